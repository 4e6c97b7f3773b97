package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/service"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		l.Error("get_orders_error", "status", 500, "reason", "cannot list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	l.Info("get_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_error", "status", 500, "reason", "cannot get order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := bindValid(c, l, "create_order", &req, "Invalid order data"); err != nil {
		return err
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid order data")
		case errors.Is(err, repo.ErrCustomerMissing):
			l.Warn("create_order_error", "status", 404, "reason", "customer not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Customer not found")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_order_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			l.Warn("create_order_error", "status", 409, "reason", "insufficient stock", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "Insufficient stock")
		default:
			l.Error("create_order_error", "status", 500, "reason", "cannot create order", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}
	}

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := bindValid(c, l, "update_status", &req, "Invalid status data"); err != nil {
		return err
	}

	if _, err := h.Svc.UpdateStatus(ctx, id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_status_error", "status", 400, "reason", "unknown status", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status data")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_status_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("update_status_error", "status", 409, "reason", "backward transition", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "Status transition not allowed")
		default:
			l.Error("update_status_error", "status", 500, "reason", "cannot update status", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update order status")
		}
	}

	l.Info("update_status_success", "order_id", id, "order_status", req.Status)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Order status updated successfully"})
}
