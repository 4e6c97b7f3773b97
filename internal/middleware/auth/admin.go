package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/tokens"
)

const (
	CtxCustomerID = "customer_id"
	CtxRole       = "role"
)

type Middleware struct {
	JWTSecret []byte
	// Enabled false lets every request through, matching the open admin surface.
	Enabled bool
}

func New(secret []byte, enabled bool) *Middleware {
	return &Middleware{JWTSecret: secret, Enabled: enabled}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != tokens.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireWithValidator(next echo.HandlerFunc, validator func(*tokens.AccessClaims) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.Enabled {
			return next(c)
		}
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

		cookie, err := c.Cookie(tokens.AccessCookieName)
		if err != nil || cookie.Value == "" {
			l.Warn("auth_error", "status", 401, "reason", "missing access token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		claims, err := tokens.AccessClaimsFromToken(cookie.Value, m.JWTSecret)
		if err != nil {
			l.Warn("auth_error", "status", 401, "reason", "invalid access token", "error", err)
			c.SetCookie(tokens.DeleteCookie(tokens.AccessCookieName, "/"))
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				l.Warn("auth_error", "status", 403, "reason", "role", "role", claims.Role)
				return err
			}
		}

		setCustomerContext(c, claims)
		return next(c)
	}
}

func setCustomerContext(c echo.Context, claims *tokens.AccessClaims) {
	if id, err := claims.CustomerID(); err == nil {
		c.Set(CtxCustomerID, id)
	}
	c.Set(CtxRole, claims.Role)
}
