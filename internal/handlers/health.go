package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/models"
	"github.com/groupboard/groupboard/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports subsystem status.
type HealthHandler struct {
	db    *gorm.DB
	queue services.TaskQueue
}

func NewHealthHandler(db *gorm.DB, queue services.TaskQueue) *HealthHandler {
	return &HealthHandler{db: db, queue: queue}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async (Redis)"
	}

	var pendingNotifications int64
	h.db.Model(&models.Notification{}).
		Where("status = ?", models.NotificationPending).
		Count(&pendingNotifications)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "groupboard",
		"components": gin.H{
			"database":              dbStatus,
			"queue_mode":            queueMode,
			"pending_notifications": pendingNotifications,
		},
	})
}
