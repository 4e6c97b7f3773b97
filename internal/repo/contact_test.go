package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func TestContactMessages(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	m1 := &models.ContactMessage{FirstName: "A", LastName: "B", Email: "a@example.com", Message: "hello there"}
	m2 := &models.ContactMessage{FirstName: "C", LastName: "D", Email: "c@example.com", Message: "second one"}
	require.NoError(t, r.CreateContactMessage(ctx, m1))
	require.NoError(t, r.CreateContactMessage(ctx, m2))
	assert.False(t, m1.IsRead)

	require.NoError(t, r.MarkMessageRead(ctx, m1.ID))
	assert.True(t, IsNotFound(r.MarkMessageRead(ctx, 4242)))

	list, err := r.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, m2.ID, list[0].ID)
	assert.False(t, list[0].IsRead)
	assert.True(t, list[1].IsRead)
}

func TestReviews(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, "Oud", models.CategoryMen, 1)

	rv := &models.Review{ProductID: p.ID, CustomerName: "A", CustomerEmail: "a@example.com", Rating: 5, Comment: "lovely"}
	require.NoError(t, r.CreateReview(ctx, rv))

	err := r.CreateReview(ctx, &models.Review{ProductID: 4242, CustomerName: "A", CustomerEmail: "a@example.com", Rating: 4})
	require.ErrorIs(t, err, ErrProductMissing)

	list, err := r.ListReviews(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)

	after, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, after.TotalReviews)
}
