package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func TestCreateCustomerIfNotExists(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	c := &models.Customer{FirstName: "Ana", LastName: "Lee", Email: "ana@example.com", Password: "hash-1"}
	require.NoError(t, r.CreateCustomerIfNotExists(ctx, c))
	require.NotZero(t, c.ID)

	dup := &models.Customer{FirstName: "Other", LastName: "Person", Email: "ana@example.com", Password: "hash-2"}
	err := r.CreateCustomerIfNotExists(ctx, dup)
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Zero(t, dup.ID)

	stored, err := r.GetCustomerByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FirstName)
	assert.Equal(t, "hash-1", stored.Password)

	n, err := r.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListCustomers_NewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		require.NoError(t, r.CreateCustomerIfNotExists(ctx, &models.Customer{FirstName: "F", LastName: "L", Email: email, Password: "x"}))
	}

	list, err := r.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b@example.com", list[0].Email)

	_, err = r.GetCustomer(ctx, 4242)
	assert.True(t, IsNotFound(err))
}
