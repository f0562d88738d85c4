package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/middleware"
	"github.com/groupboard/groupboard/internal/services"
	"github.com/groupboard/groupboard/pkg/response"
)

// TopicHandler exposes topic selection and the approval workflow.
type TopicHandler struct {
	topics     *services.TopicService
	dispatcher services.NotificationDispatcher
}

func NewTopicHandler(topics *services.TopicService, dispatcher services.NotificationDispatcher) *TopicHandler {
	return &TopicHandler{topics: topics, dispatcher: dispatcher}
}

// Select claims a slot on the topic for the caller.
func (h *TopicHandler) Select(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.topics.Select(topicID, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	switch result.Status {
	case services.SelectOK, services.SelectPendingApproval:
		response.Success(c, result)
	case services.SelectTopicNotFound, services.SelectTopicInactive:
		response.NotFound(c, "topic not found")
	case services.SelectDeadlinePassed:
		response.Conflict(c, "selection deadline has passed")
	case services.SelectAlreadySelected:
		response.Conflict(c, "topic already selected")
	case services.SelectCapacityFull:
		response.Conflict(c, "topic has no free slots")
	default:
		response.ServerError(c, "unexpected select status")
	}
}

// Approve confirms a pending selection (staff only).
func (h *TopicHandler) Approve(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	found, err := h.topics.Approve(topicID, userID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !found {
		response.NotFound(c, "selection not found")
		return
	}

	h.dispatcher.Notify(userID, "Topic approved", "Your topic selection has been approved.")
	response.Success(c, gin.H{"approved": true})
}

// Reject removes a selection and frees its slot (staff only).
func (h *TopicHandler) Reject(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	found, err := h.topics.Reject(topicID, userID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !found {
		response.NotFound(c, "selection not found")
		return
	}

	h.dispatcher.Notify(userID, "Topic rejected", "Your topic selection was rejected. The slot has been freed, you can pick another topic.")
	response.Success(c, gin.H{"rejected": true})
}

// ListSelections returns all selections of a topic (staff only).
func (h *TopicHandler) ListSelections(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	selections, err := h.topics.ListSelections(topicID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, selections)
}

// GetMySelections returns the caller's selections across all topics.
func (h *TopicHandler) GetMySelections(c *gin.Context) {
	selections, err := h.topics.GetUserSelections(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, selections)
}

// Create opens a new topic (staff only).
func (h *TopicHandler) Create(c *gin.Context) {
	var req services.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	topic, err := h.topics.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, topic)
}

// Deactivate closes a topic (staff only).
func (h *TopicHandler) Deactivate(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.topics.Deactivate(topicID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !found {
		response.NotFound(c, "topic not found")
		return
	}
	response.Success(c, gin.H{"deactivated": true})
}

// ListGroupTopics returns the active topics of a group.
func (h *TopicHandler) ListGroupTopics(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}

	topics, err := h.topics.ListGroupTopics(groupID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, topics)
}
