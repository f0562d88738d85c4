package models

import "time"

// TopicSelection associates a user with a topic. Identity is (topic, user).
// Approved starts false when the topic requires approval and true otherwise.
// Approving flips the flag; rejecting deletes the row, which is what frees
// the capacity slot.
type TopicSelection struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TopicID    uint      `gorm:"uniqueIndex:idx_topic_user;index;not null" json:"topic_id"`
	Topic      *Topic    `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"topic,omitempty"`
	UserID     uint      `gorm:"uniqueIndex:idx_topic_user;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Approved   bool      `gorm:"default:false;index" json:"approved"`
	SelectedAt time.Time `gorm:"autoCreateTime" json:"selected_at"`
}

func (TopicSelection) TableName() string { return "topic_selections" }
