package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/service"
	"github.com/safsequence/Avance-Fragrance/internal/tokens"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

type AuthHTTP struct {
	Svc *service.CustomerService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := bindValid(c, l, "signup", &req, "Invalid customer data"); err != nil {
		return err
	}

	customer, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			l.Warn("signup_error", "status", 400, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid customer data")
		}
		l.Error("signup_error", "status", 500, "reason", "cannot create customer", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create customer")
	}

	l.Info("signup_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	if req.Email == "" || req.Password == "" {
		l.Warn("login_error", "status", 400, "reason", "missing credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "reason", "missing credentials")
			return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_error", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		default:
			l.Error("login_error", "status", 500, "reason", "cannot log in", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to login")
		}
	}

	if res.AccessToken != "" {
		c.SetCookie(tokens.CreateCookie(tokens.AccessCookieName, res.AccessToken, "/", res.AccessExp))
	}

	l.Info("login_success", "customer_id", res.Customer.ID, "is_admin", res.IsAdmin)
	return c.JSON(http.StatusOK, res.Customer)
}
