package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/safsequence/Avance-Fragrance/internal/middleware/logging"
	"github.com/safsequence/Avance-Fragrance/internal/validation"
)

// New builds the echo instance with the middleware chain and validator. Routes
// are added by Register.
func New(base *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	cors := middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}
	if len(corsOrigins) > 0 {
		cors.AllowOrigins = corsOrigins
		cors.AllowCredentials = true
	}
	e.Use(middleware.CORSWithConfig(cors))
	e.Use(loggingmw.RequestLogger(base))

	return e
}
