package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/testutil"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: testutil.NewDB(t)}
}

func seedProduct(t *testing.T, r *GormRepo, name, category string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Price:    models.NewFixed(decimal.RequireFromString("100.00")),
		Category: category,
		ImageURL: "http://x",
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func count(t *testing.T, r *GormRepo, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.DB.Model(model).Count(&n).Error)
	return n
}
