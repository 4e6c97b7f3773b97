package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

// CreateOrder writes the header, its items and every stock decrement in one
// transaction. Any failure rolls all of it back.
//
// With enforceStock false the decrement is unconditional and stock may go
// negative. With enforceStock true each decrement is guarded by stock >= qty
// in the same statement, so concurrent orders cannot oversell.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem, enforceStock bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.CustomerID != nil {
			var n int64
			if err := tx.Model(&models.Customer{}).Where("id = ?", *order.CustomerID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: id %d", ErrCustomerMissing, *order.CustomerID)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, it := range items {
			if err := decrementStock(tx, it.ProductID, it.Quantity, enforceStock); err != nil {
				return err
			}
		}
		return nil
	})
}

func decrementStock(tx *gorm.DB, productID uint, qty int, enforce bool) error {
	q := tx.Model(&models.Product{}).Where("id = ?", productID)
	if enforce {
		q = q.Where("stock >= ?", qty)
	}

	res := q.Updates(map[string]any{
		"stock":      gorm.Expr("stock - ?", qty),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if enforce {
		var n int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: product %d", ErrStockTooLow, productID)
		}
	}
	return fmt.Errorf("%w: id %d", ErrProductMissing, productID)
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.OrderWithItems, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}

	out, err := r.withItems(ctx, []models.Order{o})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.OrderWithItems, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("order_date DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return r.withItems(ctx, orders)
}

func (r *GormRepo) ListOrdersByCustomer(ctx context.Context, customerID uint) ([]models.OrderWithItems, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).
		Order("order_date DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return r.withItems(ctx, orders)
}

// withItems loads items, their products and the linked customers for orders
// in three queries and assembles the nested shape.
func (r *GormRepo) withItems(ctx context.Context, orders []models.Order) ([]models.OrderWithItems, error) {
	out := make([]models.OrderWithItems, len(orders))
	if len(orders) == 0 {
		return out, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	customerIDs := make([]uint, 0)
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		if o.CustomerID != nil {
			customerIDs = append(customerIDs, *o.CustomerID)
		}
	}

	db := r.DB.WithContext(ctx)

	var items []models.OrderItem
	if err := db.Where("order_id IN ?", orderIDs).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; !ok {
			seen[it.ProductID] = struct{}{}
			productIDs = append(productIDs, it.ProductID)
		}
	}

	products := make(map[uint]*models.Product, len(productIDs))
	if len(productIDs) > 0 {
		var rows []models.Product
		if err := db.Where("id IN ?", productIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			products[rows[i].ID] = &rows[i]
		}
	}

	customers := make(map[uint]*models.Customer, len(customerIDs))
	if len(customerIDs) > 0 {
		var rows []models.Customer
		if err := db.Where("id IN ?", customerIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			customers[rows[i].ID] = &rows[i]
		}
	}

	itemsByOrder := make(map[uint][]models.OrderItemWithProduct, len(orders))
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], models.OrderItemWithProduct{
			OrderItem: it,
			Product:   products[it.ProductID],
		})
	}

	for i, o := range orders {
		out[i] = models.OrderWithItems{Order: o, Items: itemsByOrder[o.ID]}
		if out[i].Items == nil {
			out[i].Items = []models.OrderItemWithProduct{}
		}
		if o.CustomerID != nil {
			out[i].Customer = customers[*o.CustomerID]
		}
	}
	return out, nil
}

// UpdateOrderStatus sets the status and stamps shipped_at / delivered_at.
// shipped_at is only set once. With strict, only forward moves are allowed.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string, strict bool) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, id).Error; err != nil {
			return err
		}

		if strict && models.StatusRank(status) <= models.StatusRank(o.Status) && status != o.Status {
			return fmt.Errorf("%w: %s -> %s", ErrStatusRegress, o.Status, status)
		}

		now := time.Now().UTC()
		updates := map[string]any{"status": status}
		switch status {
		case models.OrderStatusShipped:
			if o.ShippedAt == nil {
				updates["shipped_at"] = now
			}
		case models.OrderStatusDelivered:
			updates["delivered_at"] = now
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&o, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderStats aggregates over all orders. Sales only count delivered orders.
func (r *GormRepo) OrderStats(ctx context.Context) (*models.Stats, error) {
	var row struct {
		TotalSales      decimal.Decimal
		TotalOrders     int64
		PendingOrders   int64
		CompletedOrders int64
	}

	err := r.DB.WithContext(ctx).Model(&models.Order{}).Select(
		"COALESCE(SUM(CASE WHEN status = ? THEN total_amount ELSE 0 END), 0) AS total_sales, "+
			"COUNT(*) AS total_orders, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_orders, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed_orders",
		models.OrderStatusDelivered, models.OrderStatusPending, models.OrderStatusDelivered,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalSales:      row.TotalSales,
		TotalOrders:     row.TotalOrders,
		PendingOrders:   row.PendingOrders,
		CompletedOrders: row.CompletedOrders,
	}, nil
}
