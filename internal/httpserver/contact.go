package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/service"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.get_messages")

	msgs, err := h.Svc.ListMessages(ctx)
	if err != nil {
		l.Error("get_messages_error", "status", 500, "reason", "cannot list messages", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch contact messages")
	}

	return c.JSON(http.StatusOK, msgs)
}

func (h *ContactHTTP) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.create_message")

	var req transport.CreateContactMessageRequest
	if err := bindValid(c, l, "create_message", &req, "Invalid message data"); err != nil {
		return err
	}

	msg, err := h.Svc.CreateMessage(ctx, req)
	if err != nil {
		l.Error("create_message_error", "status", 500, "reason", "cannot store message", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create contact message")
	}

	l.Info("create_message_success", "message_id", msg.ID)
	return c.JSON(http.StatusCreated, msg)
}

func (h *ContactHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.mark_read")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("mark_read_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid message id")
	}

	if err := h.Svc.MarkRead(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("mark_read_error", "status", 404, "reason", "message not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		l.Error("mark_read_error", "status", 500, "reason", "cannot mark message", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark message as read")
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Message marked as read"})
}
