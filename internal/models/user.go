package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles, ordered by privilege.
const (
	RoleAdmin     = "admin"
	RoleLeader    = "leader"
	RoleAssistant = "assistant"
	RoleStudent   = "student"
)

// User represents a registered participant. Students register through an
// invite token; admin and staff accounts can also sign in with a password.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TelegramID   *int64         `gorm:"uniqueIndex" json:"telegram_id,omitempty"`
	Username     string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FullName     string         `gorm:"size:255" json:"full_name"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;default:student;index" json:"role"` // admin, leader, assistant, student
	GroupID      *uint          `gorm:"index" json:"group_id,omitempty"`
	Group        *Group         `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// IsStaff reports whether the user may manage group resources.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleLeader || u.Role == RoleAssistant
}
