package models

import "time"

// Queue is an ordered waitlist for a bounded activity such as a defense slot.
// MaxParticipants nil means unbounded. Queues are never hard-deleted; staff
// deactivate them instead, and an inactive queue is invisible to the
// allocator (joins report the queue as not found).
type Queue struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	GroupID         uint       `gorm:"index;not null" json:"group_id"`
	Group           *Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CreatedBy       uint       `json:"created_by"`
	IsActive        bool       `gorm:"index" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (Queue) TableName() string { return "queues" }
