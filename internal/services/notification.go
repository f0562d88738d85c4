package services

import (
	"context"
	"errors"
	"time"

	"github.com/groupboard/groupboard/internal/models"
	"github.com/groupboard/groupboard/pkg/logger"
	"gorm.io/gorm"
)

const (
	MaxDeliveryRetries = 3
	RetryBatchSize     = 20
)

// NotificationDispatcher receives allocation outcomes and other user-facing
// messages. Fire-and-forget: implementations must never block the caller on
// delivery and must swallow (log) delivery failures.
type NotificationDispatcher interface {
	Notify(userID uint, title, body string)
}

// NotificationService persists notifications and pushes them to Telegram
// through the task queue.
type NotificationService struct {
	db     *gorm.DB
	queue  TaskQueue
	sender MessageSender
}

func NewNotificationService(db *gorm.DB, queue TaskQueue, sender MessageSender) *NotificationService {
	return &NotificationService{db: db, queue: queue, sender: sender}
}

// Notify records the message and schedules delivery. Errors are logged, not
// returned: notification failure must never fail the triggering operation.
func (s *NotificationService) Notify(userID uint, title, body string) {
	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Status: models.NotificationPending,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("failed to store notification")
		return
	}

	if err := s.queue.Enqueue(&NotificationTask{NotificationID: notification.ID}); err != nil {
		logger.Error().Err(err).Uint("notification_id", notification.ID).Msg("failed to enqueue notification")
	}
}

// Deliver is the task processor: it pushes one stored notification to the
// recipient's Telegram chat and records the result.
func (s *NotificationService) Deliver(ctx context.Context, task *NotificationTask) error {
	var notification models.Notification
	if err := s.db.Preload("User").First(&notification, task.NotificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Uint("notification_id", task.NotificationID).Msg("notification row gone, skipping")
			return nil
		}
		return err
	}
	if notification.Status == models.NotificationSent {
		return nil
	}

	if notification.User == nil || notification.User.TelegramID == nil {
		// Recipient has no chat bound; keep the row readable via the API.
		return s.db.Model(&notification).Update("status", models.NotificationFailed).Error
	}

	text := notification.Body
	if notification.Title != "" {
		text = "*" + notification.Title + "*\n\n" + notification.Body
	}

	if err := s.sender.SendMessage(*notification.User.TelegramID, text); err != nil {
		logger.Warn().Err(err).Uint("notification_id", notification.ID).Msg("delivery failed")
		return s.db.Model(&notification).Updates(map[string]interface{}{
			"status":      models.NotificationFailed,
			"retry_count": notification.RetryCount + 1,
		}).Error
	}

	now := time.Now()
	return s.db.Model(&notification).Updates(map[string]interface{}{
		"status":  models.NotificationSent,
		"sent_at": now,
	}).Error
}

// RetryFailed re-enqueues failed deliveries that still have retries left.
// Called periodically by the reminder scheduler.
func (s *NotificationService) RetryFailed() {
	var failed []models.Notification
	err := s.db.Where("status = ? AND retry_count < ?", models.NotificationFailed, MaxDeliveryRetries).
		Order("created_at ASC").
		Limit(RetryBatchSize).
		Find(&failed).Error
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch failed notifications")
		return
	}

	for _, n := range failed {
		if err := s.db.Model(&n).Update("status", models.NotificationPending).Error; err != nil {
			continue
		}
		if err := s.queue.Enqueue(&NotificationTask{NotificationID: n.ID}); err != nil {
			logger.Warn().Err(err).Uint("notification_id", n.ID).Msg("re-enqueue failed")
		}
	}

	if len(failed) > 0 {
		logger.Infof("[Notification] Re-enqueued %d failed deliveries", len(failed))
	}
}

// ListUserNotifications returns the user's notifications, newest first.
func (s *NotificationService) ListUserNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
