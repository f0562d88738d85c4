package services

import (
	"errors"
	"time"

	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

// EventService manages group events and deadlines.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventRequest struct {
	GroupID     uint   `json:"group_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	StartsAt    string `json:"starts_at" binding:"required"` // RFC3339
}

func (s *EventService) Create(req *CreateEventRequest, createdBy uint) (*models.Event, error) {
	eventType := req.Type
	switch eventType {
	case "":
		eventType = models.EventLecture
	case models.EventLecture, models.EventDeadline, models.EventExam, models.EventDefense:
	default:
		return nil, errors.New("invalid event type")
	}

	startsAt, err := parseTimestamp(req.StartsAt)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		GroupID:     req.GroupID,
		Title:       req.Title,
		Description: req.Description,
		Type:        eventType,
		StartsAt:    startsAt,
		CreatedBy:   createdBy,
		IsActive:    true,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListGroupEvents returns the group's active events from now on, soonest
// first.
func (s *EventService) ListGroupEvents(groupID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Where("group_id = ? AND is_active = ? AND starts_at >= ?", groupID, true, time.Now()).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// ListUpcoming returns active events of a group starting within the window.
func (s *EventService) ListUpcoming(groupID uint, within time.Duration) ([]models.Event, error) {
	now := time.Now()
	var events []models.Event
	err := s.db.Where("group_id = ? AND is_active = ? AND starts_at BETWEEN ? AND ?",
		groupID, true, now, now.Add(within)).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// DueForReminder returns events starting within the window that have not
// been reminded yet, across all groups.
func (s *EventService) DueForReminder(within time.Duration) ([]models.Event, error) {
	now := time.Now()
	var events []models.Event
	err := s.db.Where("is_active = ? AND reminded_at IS NULL AND starts_at BETWEEN ? AND ?",
		true, now, now.Add(within)).
		Find(&events).Error
	return events, err
}

// MarkReminded stamps the event so the reminder fires once.
func (s *EventService) MarkReminded(eventID uint) error {
	now := time.Now()
	return s.db.Model(&models.Event{}).Where("id = ?", eventID).
		Update("reminded_at", now).Error
}

// Deactivate soft-deletes an event. Returns false when the event does not
// exist or is already inactive.
func (s *EventService) Deactivate(eventID uint) (bool, error) {
	res := s.db.Model(&models.Event{}).
		Where("id = ? AND is_active = ?", eventID, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetByID loads an event or nil when absent.
func (s *EventService) GetByID(eventID uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
