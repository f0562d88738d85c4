package main

import (
	"github.com/gin-gonic/gin"
	"github.com/groupboard/groupboard/internal/middleware"
	"github.com/groupboard/groupboard/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public registration route
	registerLimiter := middleware.NewRateLimiter(2, 5)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", registerLimiter.Middleware(), svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog(svc.systemLogs))
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)

			// Queues
			protected.GET("/groups/:id/queues", svc.queueHandler.ListGroupQueues)
			protected.GET("/queues/:id/entries", svc.queueHandler.ListEntries)
			protected.GET("/queues/:id/entries/me", svc.queueHandler.GetMyEntry)
			protected.POST("/queues/:id/join", svc.queueHandler.Join)
			protected.POST("/queues/:id/leave", svc.queueHandler.Leave)

			// Topics
			protected.GET("/groups/:id/topics", svc.topicHandler.ListGroupTopics)
			protected.GET("/selections/me", svc.topicHandler.GetMySelections)
			protected.POST("/topics/:id/select", svc.topicHandler.Select)

			// Events
			protected.GET("/groups/:id/events", svc.eventHandler.ListGroupEvents)
			protected.GET("/events/:id", svc.eventHandler.Get)

			// Notifications
			protected.GET("/notifications/me", svc.notificationHandler.ListMine)
		}

		// Staff routes (leader, assistant, admin)
		staff := api.Group("")
		staff.Use(middleware.AuthRequired(), middleware.StaffRequired(), middleware.AuditLog(svc.systemLogs))
		{
			staff.POST("/queues", svc.queueHandler.Create)
			staff.DELETE("/queues/:id", svc.queueHandler.Deactivate)

			staff.POST("/topics", svc.topicHandler.Create)
			staff.DELETE("/topics/:id", svc.topicHandler.Deactivate)
			staff.GET("/topics/:id/selections", svc.topicHandler.ListSelections)
			staff.POST("/topics/:id/selections/:user_id/approve", svc.topicHandler.Approve)
			staff.POST("/topics/:id/selections/:user_id/reject", svc.topicHandler.Reject)

			staff.POST("/events", svc.eventHandler.Create)
			staff.DELETE("/events/:id", svc.eventHandler.Deactivate)

			staff.GET("/groups/:id/members", svc.groupHandler.ListMembers)
			staff.POST("/groups/:id/invites", svc.groupHandler.CreateInvite)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog(svc.systemLogs))
		{
			admin.GET("/groups", svc.groupHandler.List)
			admin.GET("/groups/:id", svc.groupHandler.Get)
			admin.POST("/groups", svc.groupHandler.Create)

			admin.GET("/system-logs", svc.systemLogHandler.List)
		}
	}
}
