package models

import "time"

// QueueEntry is one user's place in a queue. For any queue the set of
// positions is exactly {1..N}: joins append at max+1, and when an entry at
// position P leaves, every entry behind it shifts down by one. Existence of
// the row is membership; there is no separate status field.
type QueueEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QueueID   uint      `gorm:"uniqueIndex:idx_queue_user;index;not null" json:"queue_id"`
	Queue     *Queue    `gorm:"foreignKey:QueueID;constraint:OnDelete:CASCADE" json:"queue,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_queue_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Position  int       `gorm:"index;not null" json:"position"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (QueueEntry) TableName() string { return "queue_entries" }
