package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/events"
	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/testutil"
)

type sentEvent struct {
	topic string
	key   string
	env   events.Envelope
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	env, _ := event.(events.Envelope)
	p.sent = append(p.sent, sentEvent{topic: topic, key: key, env: env})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, e := range p.sent {
		out = append(out, e.env.EventType)
	}
	return out
}

func newTestDeps(t *testing.T) (*repo.GormRepo, *events.Emitter, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &repo.GormRepo{DB: testutil.NewDB(t)}, &events.Emitter{Pub: pub, Producer: "test"}, pub
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Price:    models.NewFixed(decimal.RequireFromString("100.00")),
		Category: models.CategoryMen,
		ImageURL: "http://x",
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}
