package services

import (
	"testing"
	"time"

	"github.com/groupboard/groupboard/internal/config"
	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, &config.Config{
		JWT:  config.JWTConfig{Secret: "test-secret", ExpireHour: 1},
		LDAP: config.LDAPConfig{Enabled: false},
	})
}

func seedInvite(t *testing.T, db *gorm.DB, groupID uint, role string, maxUses int) *models.InviteToken {
	t.Helper()
	invite := &models.InviteToken{
		Token:    "token-" + t.Name(),
		GroupID:  groupID,
		Role:     role,
		MaxUses:  maxUses,
		IsActive: true,
	}
	if err := db.Create(invite).Error; err != nil {
		t.Fatalf("seed invite: %v", err)
	}
	return invite
}

func TestRegisterWithInvite(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	invite := seedInvite(t, db, group.ID, models.RoleStudent, 0)
	svc := newAuthService(db)

	chatID := int64(4242)
	result, err := svc.Register(&RegisterRequest{
		Token:      invite.Token,
		Username:   "alice",
		FullName:   "Alice A.",
		TelegramID: &chatID,
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a JWT in the result")
	}
	if result.User.Role != models.RoleStudent {
		t.Errorf("role = %q, expected %q", result.User.Role, models.RoleStudent)
	}
	if result.User.GroupID == nil || *result.User.GroupID != group.ID {
		t.Error("user should be placed into the invite's group")
	}

	var reloaded models.InviteToken
	db.First(&reloaded, invite.ID)
	if reloaded.UsedCount != 1 {
		t.Errorf("used_count = %d, expected 1", reloaded.UsedCount)
	}
}

func TestRegisterInvalidToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterRequest{Token: "does-not-exist", Username: "alice"})
	if err == nil {
		t.Error("expected error for unknown invite token")
	}
}

func TestRegisterExhaustedToken(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	invite := seedInvite(t, db, group.ID, models.RoleStudent, 1)
	svc := newAuthService(db)

	if _, err := svc.Register(&RegisterRequest{Token: invite.Token, Username: "alice"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(&RegisterRequest{Token: invite.Token, Username: "bob"}); err == nil {
		t.Error("expected error for exhausted invite token")
	}
}

func TestRegisterExpiredToken(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	invite := seedInvite(t, db, group.ID, models.RoleStudent, 0)
	past := time.Now().Add(-time.Hour)
	if err := db.Model(invite).Update("expires_at", &past).Error; err != nil {
		t.Fatalf("expire invite: %v", err)
	}
	svc := newAuthService(db)

	if _, err := svc.Register(&RegisterRequest{Token: invite.Token, Username: "alice"}); err == nil {
		t.Error("expected error for expired invite token")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	invite := seedInvite(t, db, group.ID, models.RoleStudent, 0)
	seedUser(t, db, "alice", group.ID)
	svc := newAuthService(db)

	if _, err := svc.Register(&RegisterRequest{Token: invite.Token, Username: "alice"}); err == nil {
		t.Error("expected error for taken username")
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	group := seedGroup(t, db)
	invite := seedInvite(t, db, group.ID, models.RoleStudent, 0)
	svc := newAuthService(db)

	if _, err := svc.Register(&RegisterRequest{
		Token:    invite.Token,
		Username: "alice",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(&LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.Username != "alice" {
		t.Errorf("username = %q, expected alice", result.User.Username)
	}

	if _, err := svc.Login(&LoginRequest{Username: "alice", Password: "wrong"}); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := svc.Login(&LoginRequest{Username: "ghost", Password: "secret123"}); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestCreateAdminIfNotExists(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if err := svc.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("CreateAdminIfNotExists: %v", err)
	}
	// Second call must not create another admin.
	if err := svc.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("second CreateAdminIfNotExists: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count != 1 {
		t.Errorf("admin count = %d, expected 1", count)
	}
}
