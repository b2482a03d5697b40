package handlers

import (
	"net/http"
	"strconv"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifier *services.NotificationDispatcher
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifier *services.NotificationDispatcher) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// EnrichedNotification includes compact actor info
type EnrichedNotification struct {
	models.Notification
	Actor *models.UserCompact `json:"actor"`
}

func enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if n.Actor != nil {
			compact := n.Actor.ToCompact()
			enriched[i].Actor = &compact
		}
	}
	return enriched
}

// GetNotifications returns paginated notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.notifier.GetUserNotifications(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": enrichNotifications(result.Items),
		},
		"meta": echo.Map{
			"currentPage":     result.Meta.CurrentPage,
			"totalPages":      result.Meta.TotalPages,
			"totalItems":      result.Meta.TotalItems,
			"itemsPerPage":    result.Meta.PageSize,
			"hasNextPage":     result.Meta.HasNextPage,
			"hasPreviousPage": result.Meta.HasPreviousPage,
		},
	})
}

// GetGroupedNotifications returns notifications grouped by time period
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	grouped, err := h.notifier.GetGroupedNotifications(ctx, currentUserID)
	if err != nil {
		return respondError(err)
	}
	unreadCount, err := h.notifier.GetUnreadCount(ctx, currentUserID)
	if err != nil {
		return respondError(err)
	}

	return success(c, http.StatusOK, echo.Map{
		"notifications": echo.Map{
			"today":     enrichNotifications(grouped.Today),
			"yesterday": enrichNotifications(grouped.Yesterday),
			"thisWeek":  enrichNotifications(grouped.ThisWeek),
			"older":     enrichNotifications(grouped.Older),
		},
		"unreadCount": unreadCount,
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifier.GetUnreadCount(c.Request().Context(), currentUserID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	notifID, err := parseIDParam(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifier.MarkAsRead(c.Request().Context(), notifID, currentUserID); err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifier.MarkAllAsRead(c.Request().Context(), currentUserID); err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}
