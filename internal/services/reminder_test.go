package services

import (
	"strings"
	"testing"
	"time"

	"github.com/groupboard/groupboard/internal/config"
	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

func newReminderService(db *gorm.DB, queue TaskQueue) *ReminderService {
	locks := NewEntityLocker()
	return NewReminderService(
		db,
		NewGroupService(db),
		NewEventService(db),
		NewTopicService(db, locks),
		NewNotificationService(db, queue, &fakeSender{}),
		NewSystemLogService(db),
		&config.SchedulerConfig{DigestTime: "08:00", RetryIntervalMin: 10, Region: "US"},
	)
}

func TestSendEventRemindersNotifiesMembersOnce(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	seedUser(t, db, "alice", group.ID)
	seedUser(t, db, "bob", group.ID)
	seedEvent(t, db, group.ID, "defense", time.Now().Add(2*time.Hour))

	queue := &recordingQueue{}
	svc := newReminderService(db, queue)

	svc.SendEventReminders()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 2 {
		t.Errorf("notifications = %d, expected one per member", count)
	}

	// Second sweep must not re-remind.
	svc.SendEventReminders()
	db.Model(&models.Notification{}).Count(&count)
	if count != 2 {
		t.Errorf("notifications after second sweep = %d, expected still 2", count)
	}
}

func TestSendEventRemindersIgnoresDistantEvents(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	seedUser(t, db, "alice", group.ID)
	seedEvent(t, db, group.ID, "next month", time.Now().Add(30*24*time.Hour))

	queue := &recordingQueue{}
	svc := newReminderService(db, queue)
	svc.SendEventReminders()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("notifications = %d, expected 0 for an event outside the window", count)
	}
}

func TestBuildGroupDigest(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	seedEvent(t, db, group.ID, "exam", time.Now().Add(48*time.Hour))

	deadline := time.Now().Add(72 * time.Hour)
	topic := &models.Topic{
		Title:         "compilers",
		GroupID:       group.ID,
		MaxSelections: 3,
		Deadline:      &deadline,
		IsActive:      true,
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	svc := newReminderService(db, &recordingQueue{})
	digest, err := svc.buildGroupDigest(group.ID)
	if err != nil {
		t.Fatalf("buildGroupDigest: %v", err)
	}
	if digest == "" {
		t.Fatal("digest should not be empty")
	}
	for _, want := range []string{"exam", "compilers"} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestBuildGroupDigestEmptyWeek(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)

	svc := newReminderService(db, &recordingQueue{})
	digest, err := svc.buildGroupDigest(group.ID)
	if err != nil {
		t.Fatalf("buildGroupDigest: %v", err)
	}
	if digest != "" {
		t.Errorf("digest for an empty week should be empty, got %q", digest)
	}
}
