package models

import "time"

// InviteToken grants registration into a group with a fixed role. Tokens are
// opaque UUID strings handed out by staff; each token can be limited by
// expiry and by a use count.
type InviteToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"size:36;uniqueIndex;not null" json:"token"`
	GroupID   uint       `gorm:"index;not null" json:"group_id"`
	Group     *Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Role      string     `gorm:"size:20;default:student" json:"role"`
	CreatedBy uint       `json:"created_by"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	MaxUses   int        `gorm:"default:0" json:"max_uses"` // 0 = unlimited
	UsedCount int        `gorm:"default:0" json:"used_count"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

func (InviteToken) TableName() string { return "invite_tokens" }

// Usable reports whether the token can still be redeemed at the given time.
func (t *InviteToken) Usable(now time.Time) bool {
	if !t.IsActive {
		return false
	}
	if t.ExpiresAt != nil && now.After(*t.ExpiresAt) {
		return false
	}
	if t.MaxUses > 0 && t.UsedCount >= t.MaxUses {
		return false
	}
	return true
}
