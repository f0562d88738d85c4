package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/groupboard/groupboard/internal/models"
	"gorm.io/gorm"
)

// GroupService manages groups, membership listings and invite tokens.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

type CreateGroupRequest struct {
	Name   string `json:"name" binding:"required"`
	Course int    `json:"course"`
}

func (s *GroupService) Create(req *CreateGroupRequest) (*models.Group, error) {
	if req.Course <= 0 {
		req.Course = 1
	}

	var count int64
	if err := s.db.Model(&models.Group{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("group name already taken")
	}

	group := models.Group{
		Name:     req.Name,
		Course:   req.Course,
		IsActive: true,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) GetByID(groupID uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// ListMembers returns the group's active users.
func (s *GroupService) ListMembers(groupID uint) ([]models.User, error) {
	var members []models.User
	err := s.db.Where("group_id = ? AND is_active = ?", groupID, true).
		Order("full_name ASC").
		Find(&members).Error
	return members, err
}

// ListActiveGroups returns all active groups.
func (s *GroupService) ListActiveGroups() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Where("is_active = ?", true).Find(&groups).Error
	return groups, err
}

type CreateInviteRequest struct {
	Role        string `json:"role"`
	ExpireHours int    `json:"expire_hours"`
	MaxUses     int    `json:"max_uses"`
}

// CreateInvite issues a new invite token for a group.
func (s *GroupService) CreateInvite(groupID, createdBy uint, req *CreateInviteRequest) (*models.InviteToken, error) {
	role := req.Role
	switch role {
	case "":
		role = models.RoleStudent
	case models.RoleStudent, models.RoleAssistant, models.RoleLeader:
	default:
		return nil, errors.New("invalid invite role")
	}

	invite := models.InviteToken{
		Token:     uuid.NewString(),
		GroupID:   groupID,
		Role:      role,
		CreatedBy: createdBy,
		MaxUses:   req.MaxUses,
		IsActive:  true,
	}
	if req.ExpireHours > 0 {
		expires := time.Now().Add(time.Duration(req.ExpireHours) * time.Hour)
		invite.ExpiresAt = &expires
	}

	if err := s.db.Create(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}
