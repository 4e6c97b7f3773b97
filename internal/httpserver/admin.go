package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/service"
)

type AdminHTTP struct {
	Stats *service.StatsService
}

func (h *AdminHTTP) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_stats")

	stats, err := h.Stats.Stats(ctx)
	if err != nil {
		l.Error("get_stats_error", "status", 500, "reason", "cannot aggregate", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch admin stats")
	}

	return c.JSON(http.StatusOK, stats)
}
