package models

import "time"

// Notification delivery states.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification is a queued user-facing message. Rows are written when an
// allocation outcome or a scheduled reminder produces a message, then the
// delivery worker pushes them to Telegram and updates Status.
type Notification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title      string     `gorm:"size:255" json:"title"`
	Body       string     `gorm:"type:text" json:"body"`
	Status     string     `gorm:"size:20;default:pending;index" json:"status"`
	RetryCount int        `gorm:"default:0" json:"retry_count"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
