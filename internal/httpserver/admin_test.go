package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func TestAdmin_Stats(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	p := s.createProduct(t, "Oud", 10)
	s.createProduct(t, "Rose", 10)

	rec := s.do(t, http.MethodPost, "/api/auth/signup", signupBody("a@example.com", "pw"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var ids []uint
	for i := 0; i < 3; i++ {
		rec = s.do(t, http.MethodPost, "/api/orders", orderBody(p.ID, 1))
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[orderResp](t, rec).ID)
	}
	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", ids[0]), map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", ids[1]), map[string]any{"status": "processing"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalSales":200.00`)
	st := decode[models.Stats](t, rec)
	assert.Equal(t, "200", st.TotalSales.String())
	assert.Equal(t, int64(3), st.TotalOrders)
	assert.Equal(t, int64(1), st.PendingOrders)
	assert.Equal(t, int64(1), st.CompletedOrders)
	assert.Equal(t, int64(2), st.TotalProducts)
	assert.Equal(t, int64(1), st.TotalCustomers)
}

func TestCustomers_CreateAndOrders(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)

	rec := s.do(t, http.MethodPost, "/api/customers", signupBody("b@example.com", "pw"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[models.Customer](t, rec)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/api/customers", signupBody("b@example.com", "pw"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	p := s.createProduct(t, "Oud", 10)
	body := orderBody(p.ID, 1)
	body["order"].(map[string]any)["customerId"] = c.ID
	rec = s.do(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body = orderBody(p.ID, 1)
	body["order"].(map[string]any)["customerId"] = 9999
	rec = s.do(t, http.MethodPost, "/api/orders", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Customer not found", decode[messageResp](t, rec).Message)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/customers/%d/orders", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]orderResp](t, rec), 1)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/customers/%d", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b@example.com", decode[models.Customer](t, rec).Email)
}

func TestContactMessages(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)

	rec := s.do(t, http.MethodPost, "/api/contact-messages", map[string]any{
		"firstName": "A", "lastName": "B", "email": "a@example.com", "message": "Restock Oud?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	m := decode[models.ContactMessage](t, rec)
	assert.False(t, m.IsRead)

	rec = s.do(t, http.MethodPost, "/api/contact-messages", map[string]any{"firstName": "A"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid message data", decode[messageResp](t, rec).Message)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/contact-messages/%d/read", m.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Message marked as read", decode[messageResp](t, rec).Message)

	rec = s.do(t, http.MethodPut, "/api/contact-messages/9999/read", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Message not found", decode[messageResp](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/contact-messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.ContactMessage](t, rec)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}

type mapCache struct {
	mu    sync.Mutex
	stats *models.Stats
}

func (c *mapCache) Get(context.Context) (*models.Stats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats, c.stats != nil, nil
}

func (c *mapCache) Set(_ context.Context, s *models.Stats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = s
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	return nil
}

func TestAdmin_StatsCacheFollowsCatalogAndSignup(t *testing.T) {
	t.Parallel()

	s := newTestServerWithCache(t, false, &mapCache{})
	stats := func() models.Stats {
		rec := s.do(t, http.MethodGet, "/api/admin/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[models.Stats](t, rec)
	}

	st := stats()
	assert.Zero(t, st.TotalProducts)
	assert.Zero(t, st.TotalCustomers)

	p := s.createProduct(t, "Oud", 3)
	rec := s.do(t, http.MethodPost, "/api/auth/signup", signupBody("a@example.com", "pw"))
	require.Equal(t, http.StatusCreated, rec.Code)

	st = stats()
	assert.Equal(t, int64(1), st.TotalProducts)
	assert.Equal(t, int64(1), st.TotalCustomers)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, stats().TotalProducts)
}
