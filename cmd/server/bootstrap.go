package main

import (
	"github.com/groupboard/groupboard/internal/config"
	"github.com/groupboard/groupboard/internal/handlers"
	"github.com/groupboard/groupboard/internal/models"
	"github.com/groupboard/groupboard/internal/services"
	"github.com/groupboard/groupboard/internal/utils"
	"github.com/groupboard/groupboard/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	taskQueue       services.TaskQueue
	worker          *services.Worker
	reminderService *services.ReminderService
	systemLogs      *services.SystemLogService

	authHandler         *handlers.AuthHandler
	groupHandler        *handlers.GroupHandler
	queueHandler        *handlers.QueueHandler
	topicHandler        *handlers.TopicHandler
	eventHandler        *handlers.EventHandler
	notificationHandler *handlers.NotificationHandler
	systemLogHandler    *handlers.SystemLogHandler
	healthHandler       *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	db := models.GetDB()

	systemLogs := services.NewSystemLogService(db)

	// Notification pipeline: rows go through the task queue to the Telegram
	// sender. Falls back to in-process delivery when Redis is disabled.
	sender := services.NewTelegramClient(&cfg.Telegram)
	taskQueue := services.NewTaskQueue(cfg)
	notificationService := services.NewNotificationService(db, taskQueue, sender)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Deliver)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis)
		worker.SetProcessor(notificationService.Deliver)
		if err := worker.Start(); err != nil {
			logger.Warn().Err(err).Msg("Failed to start async worker")
			worker = nil
		}
	}

	locks := services.NewEntityLocker()
	queueService := services.NewQueueService(db, locks)
	topicService := services.NewTopicService(db, locks)
	groupService := services.NewGroupService(db)
	eventService := services.NewEventService(db)
	authService := services.NewAuthService(db, cfg)

	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	reminderService := services.NewReminderService(
		db, groupService, eventService, topicService,
		notificationService, systemLogs, &cfg.Scheduler,
	)
	reminderService.Start()

	return &appServices{
		taskQueue:       taskQueue,
		worker:          worker,
		reminderService: reminderService,
		systemLogs:      systemLogs,

		authHandler:         handlers.NewAuthHandler(authService),
		groupHandler:        handlers.NewGroupHandler(groupService),
		queueHandler:        handlers.NewQueueHandler(queueService, notificationService),
		topicHandler:        handlers.NewTopicHandler(topicService, notificationService),
		eventHandler:        handlers.NewEventHandler(eventService),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
		systemLogHandler:    handlers.NewSystemLogHandler(systemLogs),
		healthHandler:       handlers.NewHealthHandler(db, taskQueue),
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	s.reminderService.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("All background services stopped")
}
