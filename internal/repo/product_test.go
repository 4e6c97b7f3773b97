package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func TestListActiveProducts_FiltersAndOrders(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	first := seedProduct(t, r, "Oud", models.CategoryMen, 1)
	second := seedProduct(t, r, "Rose", models.CategoryWomen, 1)
	third := seedProduct(t, r, "Cedar", models.CategoryMen, 1)
	require.NoError(t, r.DeactivateProduct(ctx, second.ID))

	all, err := r.ListActiveProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	women, err := r.ListActiveProducts(ctx, models.CategoryWomen)
	require.NoError(t, err)
	assert.Empty(t, women)
	assert.NotNil(t, women)

	men, err := r.ListActiveProducts(ctx, models.CategoryMen)
	require.NoError(t, err)
	assert.Len(t, men, 2)
}

func TestDeactivateProduct_KeepsRow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, "Oud", models.CategoryMen, 3)

	require.NoError(t, r.DeactivateProduct(ctx, p.ID))

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, int64(1), count(t, r, &models.Product{}))

	err = r.DeactivateProduct(ctx, 9999)
	assert.True(t, IsNotFound(err))
}

func TestUpdateProduct_Partial(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, "Oud", models.CategoryMen, 3)

	got, err := r.UpdateProduct(ctx, p.ID, map[string]any{"price": decimal.RequireFromString("80.50")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("80.50").Equal(got.Price.Decimal))
	assert.Equal(t, "Oud", got.Name)
	assert.Equal(t, 3, got.Stock)
	assert.False(t, got.UpdatedAt.Before(p.UpdatedAt))

	_, err = r.UpdateProduct(ctx, 9999, map[string]any{"name": "x"})
	assert.True(t, IsNotFound(err))
}

func TestSearchProducts_Fallback(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	seedProduct(t, r, "Midnight Oud", models.CategoryMen, 1)
	seedProduct(t, r, "Oud Royale", models.CategoryUnisex, 1)
	hidden := seedProduct(t, r, "Oud Retired", models.CategoryMen, 1)
	seedProduct(t, r, "Rose Water", models.CategoryWomen, 1)
	require.NoError(t, r.DeactivateProduct(ctx, hidden.ID))

	total, items, err := r.SearchProducts(ctx, "OUD", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Oud Royale", items[0].Name)

	total, items, err = r.SearchProducts(ctx, "100%", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestActiveProductsByIDs_KeepsOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	a := seedProduct(t, r, "A", models.CategoryMen, 1)
	b := seedProduct(t, r, "B", models.CategoryMen, 1)
	c := seedProduct(t, r, "C", models.CategoryMen, 1)
	require.NoError(t, r.DeactivateProduct(ctx, b.ID))

	got, err := r.ActiveProductsByIDs(ctx, []uint{c.ID, b.ID, 4242, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestCreateProduct_ExplicitInactive(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	p := &models.Product{
		Name:     "Hidden",
		Price:    models.NewFixed(decimal.RequireFromString("50.00")),
		Category: models.CategoryLimited,
		ImageURL: "http://x",
	}
	require.NoError(t, r.CreateProduct(ctx, p))
	assert.False(t, p.IsActive)

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	listed, err := r.ListActiveProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
