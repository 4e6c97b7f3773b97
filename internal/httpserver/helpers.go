package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/transport"
	"github.com/safsequence/Avance-Fragrance/internal/validation"
)

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(v), nil
}

// bindValid binds the body into req and runs the registered validator. Both
// failures become a 400 carrying invalidMsg; validation failures also list
// the offending fields.
func bindValid(c echo.Context, l *slog.Logger, op string, req any, invalidMsg string) error {
	if err := c.Bind(req); err != nil {
		l.Warn(op+"_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, invalidMsg)
	}

	if err := c.Validate(req); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			l.Warn(op+"_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, transport.ValidationErrorResponse{
				Message: invalidMsg,
				Errors:  verrs,
			})
		}
		l.Warn(op+"_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, invalidMsg)
	}
	return nil
}
