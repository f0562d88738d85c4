package services

import (
	"errors"
	"time"

	"github.com/groupboard/groupboard/internal/config"
	"github.com/groupboard/groupboard/internal/models"
	"github.com/groupboard/groupboard/internal/utils"
	"github.com/groupboard/groupboard/pkg/logger"
	"gorm.io/gorm"
)

// AuthService handles invite-token registration and password login.
type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
	ldap      *LDAPService
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:        db,
		jwtConfig: &cfg.JWT,
		ldap:      NewLDAPService(&cfg.LDAP),
	}
}

type RegisterRequest struct {
	Token      string `json:"token" binding:"required"`
	Username   string `json:"username" binding:"required"`
	FullName   string `json:"full_name"`
	TelegramID *int64 `json:"telegram_id"`
	Password   string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expire_at"`
	User     *models.User `json:"user"`
}

// Register redeems an invite token and creates the user with the token's
// group and role. When LDAP verification is enabled the supplied credentials
// must match the university directory.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	if s.ldap.Enabled() {
		if _, err := s.ldap.Authenticate(req.Username, req.Password); err != nil {
			return nil, errors.New("university account verification failed")
		}
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invite models.InviteToken
		if err := tx.Where("token = ?", req.Token).First(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("invalid invite token")
			}
			return err
		}
		if !invite.Usable(time.Now()) {
			return errors.New("invite token expired or exhausted")
		}

		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("username already taken")
		}

		user = models.User{
			Username:   req.Username,
			FullName:   req.FullName,
			TelegramID: req.TelegramID,
			Role:       invite.Role,
			GroupID:    &invite.GroupID,
			IsActive:   true,
		}
		if req.Password != "" {
			hash, err := utils.HashPassword(req.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		return tx.Model(&invite).Update("used_count", invite.UsedCount+1).Error
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(&user)
}

// Login authenticates with username and password.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid username or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("user is disabled")
	}
	if user.PasswordHash == "" || !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, errors.New("invalid username or password")
	}

	return s.issueToken(&user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	hours := s.jwtConfig.ExpireHour
	if hours <= 0 {
		hours = 24
	}
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, hours)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:    token,
		ExpireAt: time.Now().Add(time.Duration(hours) * time.Hour),
		User:     user,
	}, nil
}

// GetUser loads a user by ID.
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Group").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the default admin account on first start.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     "admin",
		FullName:     "Administrator",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Warn().Msg("created default admin account, change its password")
	return nil
}
