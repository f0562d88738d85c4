package services

import (
	"fmt"
	"testing"

	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The shared cache keeps all
// pool connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.InviteToken{},
		&models.Event{},
		&models.Queue{},
		&models.QueueEntry{},
		&models.Topic{},
		&models.TopicSelection{},
		&models.Notification{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedGroup(t *testing.T, db *gorm.DB) *models.Group {
	t.Helper()
	group := &models.Group{Name: "group-" + t.Name(), Course: 1, IsActive: true}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return group
}

func seedUser(t *testing.T, db *gorm.DB, username string, groupID uint) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		FullName: username,
		Role:     models.RoleStudent,
		GroupID:  &groupID,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedQueue(t *testing.T, db *gorm.DB, groupID uint, maxParticipants *int) *models.Queue {
	t.Helper()
	queue := &models.Queue{
		Title:           "queue-" + t.Name(),
		GroupID:         groupID,
		MaxParticipants: maxParticipants,
		CreatedBy:       1,
		IsActive:        true,
	}
	if err := db.Create(queue).Error; err != nil {
		t.Fatalf("seed queue: %v", err)
	}
	return queue
}

func seedTopic(t *testing.T, db *gorm.DB, groupID uint, maxSelections int, requiresApproval bool) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		Title:            "topic-" + t.Name(),
		GroupID:          groupID,
		MaxSelections:    maxSelections,
		RequiresApproval: requiresApproval,
		CreatedBy:        1,
		IsActive:         true,
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	return topic
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
