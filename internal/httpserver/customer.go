package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/service"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

type CustomerHTTP struct {
	Svc    *service.CustomerService
	Orders *service.OrderService
}

func (h *CustomerHTTP) GetCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_customers")

	customers, err := h.Svc.ListCustomers(ctx)
	if err != nil {
		l.Error("get_customers_error", "status", 500, "reason", "cannot list customers", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch customers")
	}

	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_customer")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_customer_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid customer id")
	}

	customer, err := h.Svc.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_customer_error", "status", 404, "reason", "customer not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Customer not found")
		}
		l.Error("get_customer_error", "status", 500, "reason", "cannot get customer", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch customer")
	}

	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) GetCustomerOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_orders")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_customer_orders_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid customer id")
	}

	orders, err := h.Orders.ListCustomerOrders(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_customer_orders_error", "status", 404, "reason", "customer not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Customer not found")
		}
		l.Error("get_customer_orders_error", "status", 500, "reason", "cannot list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, orders)
}

// CreateCustomer is the admin path. It shares hashing and the duplicate check
// with signup.
func (h *CustomerHTTP) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create_customer")

	var req transport.SignupRequest
	if err := bindValid(c, l, "create_customer", &req, "Invalid customer data"); err != nil {
		return err
	}

	customer, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			l.Warn("create_customer_error", "status", 400, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_customer_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid customer data")
		}
		l.Error("create_customer_error", "status", 500, "reason", "cannot create customer", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create customer")
	}

	l.Info("create_customer_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}
