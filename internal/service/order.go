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

type OrderService struct {
	Repo   *repo.GormRepo
	Events *events.Emitter
	Stats  statscache.Cache

	// EnforceStock rejects orders that would take stock below zero.
	EnforceStock bool
	// StrictTransitions only allows pending -> processing -> shipped -> delivered.
	StrictTransitions bool
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.OrderWithItems, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.OrderWithItems, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return o, nil
}

// CreateOrder places the order and decrements stock atomically, then returns
// the stored order with its items and products. The submitted total is kept
// as is.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.OrderWithItems, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}
	if req.Order.TotalAmount == nil {
		return nil, fmt.Errorf("%w: totalAmount is required", ErrValidation)
	}

	status := req.Order.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if models.StatusRank(status) < 0 {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order := &models.Order{
		CustomerID:      req.Order.CustomerID,
		CustomerName:    strings.TrimSpace(req.Order.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.Order.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.Order.CustomerPhone),
		ShippingAddress: req.Order.ShippingAddress,
		TotalAmount:     models.NewFixed(*req.Order.TotalAmount),
		Status:          status,
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for i, it := range req.Items {
		if it.Quantity < 1 || it.Price == nil {
			return nil, fmt.Errorf("%w: items[%d] is invalid", ErrValidation, i)
		}
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     models.NewFixed(*it.Price),
		})
	}

	if err := s.Repo.CreateOrder(ctx, order, items, s.EnforceStock); err != nil {
		switch {
		case errors.Is(err, repo.ErrProductMissing), errors.Is(err, repo.ErrCustomerMissing):
			l.Warn("create_order_error", "reason", "referenced row missing", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrOrderCreationFailed, fmt.Errorf("%w: %w", ErrNotFound, err))
		case errors.Is(err, repo.ErrStockTooLow):
			l.Warn("create_order_error", "reason", "insufficient stock", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrOrderCreationFailed, fmt.Errorf("%w: %w", ErrInsufficientStock, err))
		default:
			l.Error("create_order_error", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrOrderCreationFailed, err)
		}
	}

	created, err := s.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		l.Error("create_order_reload_error", "order_id", order.ID, "error", err)
		return nil, err
	}

	s.invalidateStats(ctx)
	s.Events.Emit(ctx, events.TopicOrders, order.ID, events.OrderCreated, created)
	l.Info("create_order_success", "order_id", order.ID, "items", len(items))
	return created, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status", "order_id", id, "status", status)

	if models.StatusRank(status) < 0 {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	o, err := s.Repo.UpdateOrderStatus(ctx, id, status, s.StrictTransitions)
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		case errors.Is(err, repo.ErrStatusRegress):
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		default:
			l.Error("update_status_error", "error", err)
			return nil, err
		}
	}

	s.invalidateStats(ctx)
	s.Events.Emit(ctx, events.TopicOrders, o.ID, events.OrderStatusUpdated, map[string]any{
		"id":          o.ID,
		"status":      o.Status,
		"shippedAt":   o.ShippedAt,
		"deliveredAt": o.DeliveredAt,
	})
	return o, nil
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID uint) ([]models.OrderWithItems, error) {
	if _, err := s.Repo.GetCustomer(ctx, customerID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return nil, err
	}
	return s.Repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *OrderService) invalidateStats(ctx context.Context) {
	invalidateStats(ctx, s.Stats)
}
