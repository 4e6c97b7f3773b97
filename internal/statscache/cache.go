package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

const Key = "storefront:admin:stats"

// Cache holds the dashboard aggregate. Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context) (*models.Stats, bool, error)
	Set(ctx context.Context, s *models.Stats) error
	Invalidate(ctx context.Context) error
}

type Nop struct{}

func (Nop) Get(context.Context) (*models.Stats, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, *models.Stats) error        { return nil }
func (Nop) Invalidate(context.Context) error                 { return nil }

type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedis(addr string, ttl time.Duration) *Redis {
	return &Redis{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		TTL:    ttl,
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context) (*models.Stats, bool, error) {
	raw, err := r.Client.Get(ctx, Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("statscache: get: %w", err)
	}

	var s models.Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("statscache: decode: %w", err)
	}
	return &s, true, nil
}

func (r *Redis) Set(ctx context.Context, s *models.Stats) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("statscache: encode: %w", err)
	}
	if err := r.Client.Set(ctx, Key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("statscache: set: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.Client.Del(ctx, Key).Err(); err != nil {
		return fmt.Errorf("statscache: del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
