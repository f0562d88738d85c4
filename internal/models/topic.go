package models

import "time"

// Topic is a selectable subject with a capacity limit. MaxSelections bounds
// the number of selection rows regardless of approval state; a pending
// selection already occupies a slot. Like queues, topics are deactivated
// rather than deleted.
type Topic struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	GroupID          uint       `gorm:"index;not null" json:"group_id"`
	Group            *Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	MaxSelections    int        `gorm:"default:1;not null" json:"max_selections"`
	RequiresApproval bool       `json:"requires_approval"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	CreatedBy        uint       `json:"created_by"`
	IsActive         bool       `gorm:"index" json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (Topic) TableName() string { return "topics" }
