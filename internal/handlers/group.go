package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/middleware"
	"github.com/groupboard/groupboard/internal/services"
	"github.com/groupboard/groupboard/pkg/response"
)

// GroupHandler exposes group administration and invite issuance.
type GroupHandler struct {
	groups *services.GroupService
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create registers a new student group (admin only).
func (h *GroupHandler) Create(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.groups.Create(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, group)
}

// List returns all active groups (admin only).
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groups.ListActiveGroups()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, groups)
}

// Get returns one group.
func (h *GroupHandler) Get(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	group, err := h.groups.GetByID(groupID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if group == nil {
		response.NotFound(c, "group not found")
		return
	}
	response.Success(c, group)
}

// ListMembers returns the group's active users (staff only).
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	members, err := h.groups.ListMembers(groupID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, members)
}

// CreateInvite issues an invite token for the group (staff only).
func (h *GroupHandler) CreateInvite(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invite, err := h.groups.CreateInvite(groupID, middleware.GetUserID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, invite)
}
