package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/response"
	"lifeline/internal/usecase"
)

// NotificationHandler holds dependencies for notification handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// notificationListQuery carries the inbox listing options.
type notificationListQuery struct {
	OnlyUnread bool `query:"only_unread"`
	Limit      int  `query:"limit"`
	Offset     int  `query:"offset"`
}

// ListMine returns the authenticated account's notifications, newest first.
func (h *NotificationHandler) ListMine(c echo.Context) error {
	var query notificationListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	notifications, err := h.uc.ListNotifications(
		c.Request().Context(), middleware.UID(c), query.OnlyUnread, query.Limit, query.Offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}

// CountUnread returns the unread badge count.
func (h *NotificationHandler) CountUnread(c echo.Context) error {
	count, err := h.uc.CountUnread(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"unread": count}, "")
}

// MarkRead marks one owned notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid notification identifier")
	}

	if err := h.uc.MarkRead(c.Request().Context(), id, middleware.UID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked read")
}

// MarkAllRead marks every owned notification as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.uc.MarkAllRead(c.Request().Context(), middleware.UID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "All notifications marked read")
}

// Broadcast fans an announcement out to the audience. Admin only.
func (h *NotificationHandler) Broadcast(c echo.Context) error {
	var input usecase.BroadcastInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid broadcast input")
	}

	count, err := h.uc.Broadcast(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"delivered": count}, "Broadcast sent successfully")
}
