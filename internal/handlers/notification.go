package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/middleware"
	"github.com/groupboard/groupboard/internal/services"
	"github.com/groupboard/groupboard/pkg/response"
)

// NotificationHandler lets users inspect their delivery history.
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListMine returns the caller's recent notifications.
func (h *NotificationHandler) ListMine(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	items, err := h.notifications.ListUserNotifications(middleware.GetUserID(c), limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, items)
}
