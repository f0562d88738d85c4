package services

import (
	"errors"

	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

// JoinStatus is the outcome of a queue join attempt.
type JoinStatus string

const (
	JoinOK            JoinStatus = "joined"
	JoinQueueNotFound JoinStatus = "queue_not_found"
	JoinQueueFull     JoinStatus = "queue_full"
	JoinAlreadyJoined JoinStatus = "already_joined"
)

// LeaveStatus is the outcome of a queue leave attempt.
type LeaveStatus string

const (
	LeaveOK         LeaveStatus = "left"
	LeaveNotInQueue LeaveStatus = "not_in_queue"
)

type JoinResult struct {
	Status JoinStatus         `json:"status"`
	Entry  *models.QueueEntry `json:"entry,omitempty"`
	Total  int64              `json:"total"`
}

type LeaveResult struct {
	Status          LeaveStatus `json:"status"`
	VacatedPosition int         `json:"vacated_position,omitempty"`
	Total           int64       `json:"total"`
}

// QueueService owns queue membership. Positions form a dense 1..N sequence
// per queue: a join appends at max(position)+1 and a leave shifts every later
// entry down by one. Both run inside a transaction while holding the queue's
// entity lock, so concurrent operations on one queue serialize and the
// sequence never skips or duplicates.
type QueueService struct {
	db    *gorm.DB
	locks *EntityLocker
}

func NewQueueService(db *gorm.DB, locks *EntityLocker) *QueueService {
	return &QueueService{db: db, locks: locks}
}

// Join adds the user to the queue at the tail position. Business failures
// (missing queue, full queue, duplicate join) come back as tagged statuses
// with no state change; only store failures return an error.
func (s *QueueService) Join(queueID, userID uint, notes string) (*JoinResult, error) {
	unlock := s.locks.Lock(queueKey(queueID))
	defer unlock()

	var result JoinResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var queue models.Queue
		if err := tx.First(&queue, queueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Status = JoinQueueNotFound
				return nil
			}
			return err
		}
		// A deactivated queue is gone as far as members are concerned.
		if !queue.IsActive {
			result.Status = JoinQueueNotFound
			return nil
		}

		var existing models.QueueEntry
		err := tx.Where("queue_id = ? AND user_id = ?", queueID, userID).First(&existing).Error
		if err == nil {
			result.Status = JoinAlreadyJoined
			result.Entry = &existing
			return tx.Model(&models.QueueEntry{}).Where("queue_id = ?", queueID).Count(&result.Total).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.QueueEntry{}).Where("queue_id = ?", queueID).Count(&count).Error; err != nil {
			return err
		}
		if queue.MaxParticipants != nil && count >= int64(*queue.MaxParticipants) {
			result.Status = JoinQueueFull
			result.Total = count
			return nil
		}

		var maxPosition int
		row := tx.Model(&models.QueueEntry{}).
			Where("queue_id = ?", queueID).
			Select("COALESCE(MAX(position), 0)").Row()
		if err := row.Scan(&maxPosition); err != nil {
			return err
		}

		entry := models.QueueEntry{
			QueueID:  queueID,
			UserID:   userID,
			Position: maxPosition + 1,
			Notes:    notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		result.Status = JoinOK
		result.Entry = &entry
		result.Total = count + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Leave removes the user's entry and closes the gap: every entry with a
// larger position moves down exactly one, preserving relative order.
func (s *QueueService) Leave(queueID, userID uint) (*LeaveResult, error) {
	unlock := s.locks.Lock(queueKey(queueID))
	defer unlock()

	var result LeaveResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.QueueEntry
		err := tx.Where("queue_id = ? AND user_id = ?", queueID, userID).First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Status = LeaveNotInQueue
				return nil
			}
			return err
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.QueueEntry{}).
			Where("queue_id = ? AND position > ?", queueID, entry.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		result.Status = LeaveOK
		result.VacatedPosition = entry.Position
		return tx.Model(&models.QueueEntry{}).Where("queue_id = ?", queueID).Count(&result.Total).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListEntries returns the queue's entries in position order.
func (s *QueueService) ListEntries(queueID uint) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	err := s.db.Preload("User").
		Where("queue_id = ?", queueID).
		Order("position ASC").
		Find(&entries).Error
	return entries, err
}

// GetUserEntry returns the user's entry in the queue, or nil when absent.
func (s *QueueService) GetUserEntry(queueID, userID uint) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.Where("queue_id = ? AND user_id = ?", queueID, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

type CreateQueueRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	GroupID         uint   `json:"group_id" binding:"required"`
	MaxParticipants *int   `json:"max_participants"`
	ScheduledAt     string `json:"scheduled_at"` // RFC3339, optional
}

// Create opens a new queue for a group.
func (s *QueueService) Create(req *CreateQueueRequest, createdBy uint) (*models.Queue, error) {
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return nil, errors.New("max_participants must be positive")
	}

	queue := models.Queue{
		Title:           req.Title,
		Description:     req.Description,
		GroupID:         req.GroupID,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       createdBy,
		IsActive:        true,
	}
	if req.ScheduledAt != "" {
		t, err := parseTimestamp(req.ScheduledAt)
		if err != nil {
			return nil, err
		}
		queue.ScheduledAt = &t
	}

	if err := s.db.Create(&queue).Error; err != nil {
		return nil, err
	}
	return &queue, nil
}

// Deactivate soft-deletes a queue and drops its entries. Returns false when
// the queue does not exist or is already inactive.
func (s *QueueService) Deactivate(queueID uint) (bool, error) {
	unlock := s.locks.Lock(queueKey(queueID))
	defer unlock()

	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var queue models.Queue
		if err := tx.First(&queue, queueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !queue.IsActive {
			return nil
		}
		found = true

		if err := tx.Model(&queue).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Where("queue_id = ?", queueID).Delete(&models.QueueEntry{}).Error
	})
	return found, err
}

// ListGroupQueues returns the active queues of a group, newest first.
func (s *QueueService) ListGroupQueues(groupID uint) ([]models.Queue, error) {
	var queues []models.Queue
	err := s.db.Where("group_id = ? AND is_active = ?", groupID, true).
		Order("created_at DESC").
		Find(&queues).Error
	return queues, err
}
