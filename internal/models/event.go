package models

import (
	"time"

	"gorm.io/gorm"
)

// Event types.
const (
	EventLecture  = "lecture"
	EventDeadline = "deadline"
	EventExam     = "exam"
	EventDefense  = "defense"
)

// Event is a dated group activity: a lecture, an assignment deadline, an exam
// or a project defense. The reminder scheduler picks events up by StartsAt.
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	GroupID     uint           `gorm:"index;not null" json:"group_id"`
	Group       *Group         `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Type        string         `gorm:"size:20;default:lecture;index" json:"type"`
	StartsAt    time.Time      `gorm:"index;not null" json:"starts_at"`
	RemindedAt  *time.Time     `json:"reminded_at,omitempty"`
	CreatedBy   uint           `json:"created_by"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Event) TableName() string { return "events" }
