package services

import (
	"testing"
	"time"

	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

func seedEvent(t *testing.T, db *gorm.DB, groupID uint, title string, startsAt time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		GroupID:   groupID,
		Title:     title,
		Type:      models.EventLecture,
		StartsAt:  startsAt,
		CreatedBy: 1,
		IsActive:  true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("seed event %s: %v", title, err)
	}
	return event
}

func TestEventCreateValidatesType(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	svc := NewEventService(db)

	event, err := svc.Create(&CreateEventRequest{
		GroupID:  group.ID,
		Title:    "thesis defense",
		Type:     models.EventDefense,
		StartsAt: "2026-10-01 10:00",
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.Type != models.EventDefense {
		t.Errorf("type = %q, expected %q", event.Type, models.EventDefense)
	}

	if _, err := svc.Create(&CreateEventRequest{
		GroupID:  group.ID,
		Title:    "bad",
		Type:     "party",
		StartsAt: "2026-10-01 10:00",
	}, 1); err == nil {
		t.Error("expected error for invalid event type")
	}
}

func TestEventDueForReminderWindow(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	svc := NewEventService(db)

	soon := seedEvent(t, db, group.ID, "soon", time.Now().Add(2*time.Hour))
	seedEvent(t, db, group.ID, "far", time.Now().Add(72*time.Hour))
	past := seedEvent(t, db, group.ID, "past", time.Now().Add(-time.Hour))
	_ = past

	due, err := svc.DueForReminder(24 * time.Hour)
	if err != nil {
		t.Fatalf("DueForReminder: %v", err)
	}
	if len(due) != 1 || due[0].ID != soon.ID {
		t.Fatalf("due events = %d, expected only the 2h event", len(due))
	}
}

func TestEventMarkRemindedFiresOnce(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	svc := NewEventService(db)

	event := seedEvent(t, db, group.ID, "soon", time.Now().Add(2*time.Hour))
	if err := svc.MarkReminded(event.ID); err != nil {
		t.Fatalf("MarkReminded: %v", err)
	}

	due, err := svc.DueForReminder(24 * time.Hour)
	if err != nil {
		t.Fatalf("DueForReminder: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("due events after reminder = %d, expected 0", len(due))
	}
}

func TestEventDeactivateHidesFromListings(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	svc := NewEventService(db)

	event := seedEvent(t, db, group.ID, "lecture", time.Now().Add(2*time.Hour))
	found, err := svc.Deactivate(event.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if !found {
		t.Fatal("Deactivate reported event not found")
	}

	events, err := svc.ListGroupEvents(group.ID)
	if err != nil {
		t.Fatalf("ListGroupEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events after deactivate = %d, expected 0", len(events))
	}

	found, err = svc.Deactivate(event.ID)
	if err != nil {
		t.Fatalf("second Deactivate: %v", err)
	}
	if found {
		t.Error("second Deactivate should report not found")
	}
}

func TestEventListUpcomingOrdersBySoonest(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	svc := NewEventService(db)

	later := seedEvent(t, db, group.ID, "later", time.Now().Add(5*time.Hour))
	sooner := seedEvent(t, db, group.ID, "sooner", time.Now().Add(time.Hour))

	events, err := svc.ListUpcoming(group.ID, 24*time.Hour)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, expected 2", len(events))
	}
	if events[0].ID != sooner.ID || events[1].ID != later.ID {
		t.Error("events should be ordered soonest first")
	}
}
