package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/middleware"
	"github.com/groupboard/groupboard/internal/services"
	"github.com/groupboard/groupboard/pkg/response"
)

// EventHandler exposes the group schedule.
type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create adds a scheduled event (staff only).
func (h *EventHandler) Create(c *gin.Context) {
	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	event, err := h.events.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, event)
}

// ListGroupEvents returns the group's upcoming schedule.
func (h *EventHandler) ListGroupEvents(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	events, err := h.events.ListGroupEvents(groupID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, events)
}

// Get returns one event.
func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	event, err := h.events.GetByID(eventID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if event == nil {
		response.NotFound(c, "event not found")
		return
	}
	response.Success(c, event)
}

// Deactivate cancels an event (staff only).
func (h *EventHandler) Deactivate(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.events.Deactivate(eventID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !found {
		response.NotFound(c, "event not found")
		return
	}
	response.Success(c, gin.H{"deactivated": true})
}
