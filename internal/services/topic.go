package services

import (
	"errors"
	"time"

	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

// SelectStatus is the outcome of a topic selection attempt.
type SelectStatus string

const (
	SelectOK              SelectStatus = "selected"
	SelectPendingApproval SelectStatus = "pending_approval"
	SelectTopicNotFound   SelectStatus = "topic_not_found"
	SelectTopicInactive   SelectStatus = "topic_inactive"
	SelectDeadlinePassed  SelectStatus = "deadline_passed"
	SelectAlreadySelected SelectStatus = "already_selected"
	SelectCapacityFull    SelectStatus = "capacity_full"
)

type SelectResult struct {
	Status    SelectStatus           `json:"status"`
	Selection *models.TopicSelection `json:"selection,omitempty"`
	Remaining int                    `json:"remaining"` // free slots after this call
}

// TopicService owns topic selection capacity and the approval workflow.
// Capacity is consumed when the selection row is created, whether or not it
// is approved yet. Approval flips a flag and never touches capacity;
// rejection deletes the row and is the only thing that frees a slot.
type TopicService struct {
	db    *gorm.DB
	locks *EntityLocker
}

func NewTopicService(db *gorm.DB, locks *EntityLocker) *TopicService {
	return &TopicService{db: db, locks: locks}
}

// Select records the user's choice of a topic. The capacity check and the
// insert run as one unit under the topic's entity lock, so two racing calls
// for the last slot produce exactly one success.
func (s *TopicService) Select(topicID, userID uint) (*SelectResult, error) {
	unlock := s.locks.Lock(topicKey(topicID))
	defer unlock()

	var result SelectResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.First(&topic, topicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Status = SelectTopicNotFound
				return nil
			}
			return err
		}
		if !topic.IsActive {
			result.Status = SelectTopicInactive
			return nil
		}
		if topic.Deadline != nil && time.Now().After(*topic.Deadline) {
			result.Status = SelectDeadlinePassed
			return nil
		}

		var existing models.TopicSelection
		err := tx.Where("topic_id = ? AND user_id = ?", topicID, userID).First(&existing).Error
		if err == nil {
			result.Status = SelectAlreadySelected
			result.Selection = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Pending rows count against capacity too.
		var count int64
		if err := tx.Model(&models.TopicSelection{}).Where("topic_id = ?", topicID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(topic.MaxSelections) {
			result.Status = SelectCapacityFull
			return nil
		}

		selection := models.TopicSelection{
			TopicID:  topicID,
			UserID:   userID,
			Approved: !topic.RequiresApproval,
		}
		if err := tx.Create(&selection).Error; err != nil {
			return err
		}

		if topic.RequiresApproval {
			result.Status = SelectPendingApproval
		} else {
			result.Status = SelectOK
		}
		result.Selection = &selection
		result.Remaining = topic.MaxSelections - int(count) - 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Approve marks the selection approved. Idempotent: approving an approved
// selection succeeds and changes nothing. Returns false when no selection
// row exists.
func (s *TopicService) Approve(topicID, userID uint) (bool, error) {
	unlock := s.locks.Lock(topicKey(topicID))
	defer unlock()

	res := s.db.Model(&models.TopicSelection{}).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Update("approved", true)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		// Updating approved=true on an already-approved row still counts as
		// affected on most drivers, but not all; check existence explicitly.
		var count int64
		if err := s.db.Model(&models.TopicSelection{}).
			Where("topic_id = ? AND user_id = ?", topicID, userID).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
	return true, nil
}

// Reject deletes the selection row, freeing its capacity slot: afterwards it
// is as if the user never selected the topic. Returns false when no
// selection row exists.
func (s *TopicService) Reject(topicID, userID uint) (bool, error) {
	unlock := s.locks.Lock(topicKey(topicID))
	defer unlock()

	res := s.db.Where("topic_id = ? AND user_id = ?", topicID, userID).
		Delete(&models.TopicSelection{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RevokeApproval moves an approved selection back to pending. The slot stays
// occupied. No caller routes to this yet; staff tooling may.
func (s *TopicService) RevokeApproval(topicID, userID uint) (bool, error) {
	unlock := s.locks.Lock(topicKey(topicID))
	defer unlock()

	res := s.db.Model(&models.TopicSelection{}).
		Where("topic_id = ? AND user_id = ? AND approved = ?", topicID, userID, true).
		Update("approved", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListSelections returns all selections of a topic, earliest first.
func (s *TopicService) ListSelections(topicID uint) ([]models.TopicSelection, error) {
	var selections []models.TopicSelection
	err := s.db.Preload("User").
		Where("topic_id = ?", topicID).
		Order("selected_at ASC").
		Find(&selections).Error
	return selections, err
}

// GetUserSelections returns everything the user has selected across topics.
func (s *TopicService) GetUserSelections(userID uint) ([]models.TopicSelection, error) {
	var selections []models.TopicSelection
	err := s.db.Preload("Topic").
		Where("user_id = ?", userID).
		Order("selected_at ASC").
		Find(&selections).Error
	return selections, err
}

type CreateTopicRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	GroupID          uint   `json:"group_id" binding:"required"`
	MaxSelections    int    `json:"max_selections"`
	RequiresApproval *bool  `json:"requires_approval"`
	Deadline         string `json:"deadline"` // RFC3339, optional
}

// Create opens a new topic for a group.
func (s *TopicService) Create(req *CreateTopicRequest, createdBy uint) (*models.Topic, error) {
	if req.MaxSelections < 1 {
		req.MaxSelections = 1
	}
	requiresApproval := true
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}

	topic := models.Topic{
		Title:            req.Title,
		Description:      req.Description,
		GroupID:          req.GroupID,
		MaxSelections:    req.MaxSelections,
		RequiresApproval: requiresApproval,
		CreatedBy:        createdBy,
		IsActive:         true,
	}
	if req.Deadline != "" {
		t, err := parseTimestamp(req.Deadline)
		if err != nil {
			return nil, err
		}
		topic.Deadline = &t
	}

	if err := s.db.Create(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

// Deactivate soft-deletes a topic. Existing selections are kept for the
// record; an inactive topic rejects new selections.
func (s *TopicService) Deactivate(topicID uint) (bool, error) {
	unlock := s.locks.Lock(topicKey(topicID))
	defer unlock()

	res := s.db.Model(&models.Topic{}).
		Where("id = ? AND is_active = ?", topicID, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListGroupTopics returns the active topics of a group ordered by title.
func (s *TopicService) ListGroupTopics(groupID uint) ([]models.Topic, error) {
	var topics []models.Topic
	err := s.db.Where("group_id = ? AND is_active = ?", groupID, true).
		Order("title ASC").
		Find(&topics).Error
	return topics, err
}
