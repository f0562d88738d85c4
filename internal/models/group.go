package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a student group. Queues, topics and events belong to a
// group; members reference it from User.GroupID.
type Group struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Course    int            `gorm:"default:1" json:"course"`
	LeaderID  *uint          `json:"leader_id,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Group) TableName() string { return "groups" }
