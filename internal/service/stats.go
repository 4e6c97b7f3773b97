package service

import (
	"context"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/statscache"
)

type StatsService struct {
	Repo  *repo.GormRepo
	Cache statscache.Cache
}

// Stats returns the dashboard aggregate, from cache when possible. Cache
// failures fall through to the database.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	l := logging.FromContext(ctx).With("svc", "stats.get")

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx)
		if err != nil {
			l.Warn("stats_cache_get_error", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	st, err := s.Repo.OrderStats(ctx)
	if err != nil {
		return nil, err
	}
	if st.TotalProducts, err = s.Repo.CountActiveProducts(ctx); err != nil {
		return nil, err
	}
	if st.TotalCustomers, err = s.Repo.CountCustomers(ctx); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, st); err != nil {
			l.Warn("stats_cache_set_error", "error", err)
		}
	}
	return st, nil
}

// invalidateStats drops the cached aggregate after a write that changes any
// of its counts. Failures only cost freshness until the TTL.
func invalidateStats(ctx context.Context, c statscache.Cache) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		logging.FromContext(ctx).Warn("stats_invalidate_error", "error", err)
	}
}
