package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/safsequence/Avance-Fragrance/internal/events"
	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/statscache"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

// ProductIndex is the external search index. A nil index means search runs
// against the database.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	RemoveProduct(ctx context.Context, id uint) error
	SearchIDs(ctx context.Context, query string, from, size int) (int64, []uint, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  ProductIndex
	Events *events.Emitter
	Stats  statscache.Cache
}

func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListActiveProducts(ctx, category)
}

// GetProduct returns the product whether or not it is active.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}

	p := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       models.NewFixed(*req.Price),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.AverageRating != nil {
		p.AverageRating = models.NewFixed(*req.AverageRating)
	}
	if req.TotalReviews != nil {
		p.TotalReviews = *req.TotalReviews
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		l.Error("create_product_error", "error", err)
		return nil, err
	}

	s.reindex(ctx, p)
	invalidateStats(ctx, s.Stats)
	s.Events.Emit(ctx, events.TopicProducts, p.ID, events.ProductCreated, p)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product", "product_id", id)

	updates := productUpdates(req)
	if len(updates) == 0 {
		return s.GetProduct(ctx, id)
	}

	p, err := s.Repo.UpdateProduct(ctx, id, updates)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		l.Error("update_product_error", "error", err)
		return nil, err
	}

	s.reindex(ctx, p)
	invalidateStats(ctx, s.Stats)
	s.Events.Emit(ctx, events.TopicProducts, p.ID, events.ProductUpdated, p)
	return p, nil
}

func productUpdates(req transport.UpdateProductRequest) map[string]any {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.AverageRating != nil {
		updates["average_rating"] = *req.AverageRating
	}
	if req.TotalReviews != nil {
		updates["total_reviews"] = *req.TotalReviews
	}
	return updates
}

// DeleteProduct is a soft delete.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product", "product_id", id)

	if err := s.Repo.DeactivateProduct(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		l.Error("delete_product_error", "error", err)
		return err
	}

	if s.Index != nil {
		if err := s.Index.RemoveProduct(ctx, id); err != nil {
			l.Warn("search_remove_error", "error", err)
		}
	}
	invalidateStats(ctx, s.Stats)
	s.Events.Emit(ctx, events.TopicProducts, id, events.ProductDeleted, map[string]any{"id": id})
	return nil
}

// SearchProducts pages through active products matching q. With an index the
// hits are resolved through the database so stock and price are current.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search", "q", q)

	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: q is required", ErrValidation)
	}

	if s.Index == nil {
		return s.Repo.SearchProducts(ctx, q, offset, limit)
	}

	total, ids, err := s.Index.SearchIDs(ctx, q, offset, limit)
	if err != nil {
		l.Warn("search_index_error", "reason", "falling back to database", "error", err)
		return s.Repo.SearchProducts(ctx, q, offset, limit)
	}

	items, err := s.Repo.ActiveProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}

	// Hits that no longer resolve to an active row are stale index entries.
	// They are dropped from the total and evicted so later pages agree.
	if stale := staleIDs(ids, items); len(stale) > 0 {
		l.Warn("search_index_stale", "hits", len(ids), "resolved", len(items), "stale_ids", stale)
		total -= int64(len(stale))
		for _, id := range stale {
			if err := s.Index.RemoveProduct(ctx, id); err != nil {
				l.Warn("search_remove_error", "product_id", id, "error", err)
			}
		}
	}
	return total, items, nil
}

func staleIDs(ids []uint, found []models.Product) []uint {
	if len(ids) == len(found) {
		return nil
	}
	live := make(map[uint]struct{}, len(found))
	for _, p := range found {
		live[p.ID] = struct{}{}
	}
	var stale []uint
	for _, id := range ids {
		if _, ok := live[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}

func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ID, "error", err)
	}
}

// ReindexAll pushes every active product to the index. Returns the number
// indexed before the first failure.
func (s *CatalogService) ReindexAll(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	products, err := s.Repo.ListActiveProducts(ctx, "")
	if err != nil {
		return 0, err
	}
	for i := range products {
		if err := s.Index.IndexProduct(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("index product %d: %w", products[i].ID, err)
		}
	}
	return len(products), nil
}

func (s *CatalogService) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListReviews(ctx, productID)
}

func (s *CatalogService) CreateReview(ctx context.Context, productID uint, req transport.CreateReviewRequest) (*models.Review, error) {
	rv := &models.Review{
		ProductID:     productID,
		CustomerID:    req.CustomerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := s.Repo.CreateReview(ctx, rv); err != nil {
		if errors.Is(err, repo.ErrProductMissing) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}
	return rv, nil
}
