package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/middleware"
	"github.com/groupboard/groupboard/internal/services"
	"github.com/groupboard/groupboard/pkg/response"
)

// QueueHandler exposes queue membership and administration.
type QueueHandler struct {
	queues     *services.QueueService
	dispatcher services.NotificationDispatcher
}

func NewQueueHandler(queues *services.QueueService, dispatcher services.NotificationDispatcher) *QueueHandler {
	return &QueueHandler{queues: queues, dispatcher: dispatcher}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

type joinRequest struct {
	Notes string `json:"notes"`
}

// Join adds the caller to a queue.
func (h *QueueHandler) Join(c *gin.Context) {
	queueID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req joinRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.queues.Join(queueID, middleware.GetUserID(c), req.Notes)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	switch result.Status {
	case services.JoinOK:
		response.Success(c, result)
	case services.JoinQueueNotFound:
		response.NotFound(c, "queue not found")
	case services.JoinQueueFull:
		response.Conflict(c, "queue is full")
	case services.JoinAlreadyJoined:
		response.Conflict(c, "already in this queue")
	default:
		response.ServerError(c, "unexpected join status")
	}
}

// Leave removes the caller from a queue.
func (h *QueueHandler) Leave(c *gin.Context) {
	queueID, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.queues.Leave(queueID, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	switch result.Status {
	case services.LeaveOK:
		response.Success(c, result)
	case services.LeaveNotInQueue:
		response.NotFound(c, "not in this queue")
	default:
		response.ServerError(c, "unexpected leave status")
	}
}

// ListEntries returns the queue in position order.
func (h *QueueHandler) ListEntries(c *gin.Context) {
	queueID, ok := parseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.queues.ListEntries(queueID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, entries)
}

// GetMyEntry returns the caller's entry in the queue.
func (h *QueueHandler) GetMyEntry(c *gin.Context) {
	queueID, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.queues.GetUserEntry(queueID, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if entry == nil {
		response.NotFound(c, "not in this queue")
		return
	}
	response.Success(c, entry)
}

// Create opens a new queue (staff only).
func (h *QueueHandler) Create(c *gin.Context) {
	var req services.CreateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	queue, err := h.queues.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, queue)
}

// Deactivate closes a queue (staff only). Members are notified before their
// entries are dropped.
func (h *QueueHandler) Deactivate(c *gin.Context) {
	queueID, ok := parseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.queues.ListEntries(queueID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	found, err := h.queues.Deactivate(queueID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !found {
		response.NotFound(c, "queue not found")
		return
	}

	for _, entry := range entries {
		h.dispatcher.Notify(entry.UserID, "Queue closed", "A queue you were in has been closed by staff.")
	}

	response.Success(c, gin.H{"deactivated": true})
}

// ListGroupQueues returns the active queues of a group.
func (h *QueueHandler) ListGroupQueues(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	queues, err := h.queues.ListGroupQueues(groupID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, queues)
}
