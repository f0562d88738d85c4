package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/groupboard/groupboard/internal/config"
	"github.com/groupboard/groupboard/internal/models"
	"github.com/groupboard/groupboard/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	digestWindow   = 7 * 24 * time.Hour
	reminderWindow = 24 * time.Hour
	logRetention   = 30 // days
)

// ReminderService runs the background jobs: the daily digest, event
// reminders, failed-delivery retries and audit log cleanup.
type ReminderService struct {
	db            *gorm.DB
	groups        *GroupService
	events        *EventService
	topics        *TopicService
	notifications *NotificationService
	systemLogs    *SystemLogService
	schoolCal     *SchoolCalendarService
	cfg           *config.SchedulerConfig

	cronScheduler *cron.Cron
	stopSweep     chan struct{}
}

func NewReminderService(
	db *gorm.DB,
	groups *GroupService,
	events *EventService,
	topics *TopicService,
	notifications *NotificationService,
	systemLogs *SystemLogService,
	cfg *config.SchedulerConfig,
) *ReminderService {
	return &ReminderService{
		db:            db,
		groups:        groups,
		events:        events,
		topics:        topics,
		notifications: notifications,
		systemLogs:    systemLogs,
		schoolCal:     NewSchoolCalendarService(cfg.Region),
		cfg:           cfg,
	}
}

// Start schedules the daily digest via cron and launches the sweep ticker.
func (s *ReminderService) Start() {
	s.cronScheduler = cron.New()

	parts := strings.Split(s.cfg.DigestTime, ":")
	hour, minute := "8", "0"
	if len(parts) == 2 {
		hour = parts[0]
		minute = parts[1]
	}
	cronExpr := fmt.Sprintf("%s %s * * *", minute, hour)

	if _, err := s.cronScheduler.AddFunc(cronExpr, s.SendDailyDigests); err != nil {
		logger.Errorf("[Reminder] Failed to schedule digest: %v", err)
	} else {
		logger.Infof("[Reminder] Digest scheduled at %s (cron: %s)", s.cfg.DigestTime, cronExpr)
	}

	// Log cleanup once a day at 03:00.
	s.cronScheduler.AddFunc("0 3 * * *", func() {
		if n, err := s.systemLogs.Cleanup(logRetention); err == nil && n > 0 {
			logger.Infof("[Reminder] Cleaned up %d old audit entries", n)
		}
	})

	s.cronScheduler.Start()

	interval := time.Duration(s.cfg.RetryIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	s.stopSweep = make(chan struct{})
	go s.sweepLoop(interval)

	logger.Infof("[Reminder] Scheduler started, sweep interval: %v", interval)
}

// Stop halts the cron scheduler and the sweep ticker.
func (s *ReminderService) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
	if s.stopSweep != nil {
		close(s.stopSweep)
	}
}

func (s *ReminderService) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SendEventReminders()
			s.notifications.RetryFailed()
		case <-s.stopSweep:
			return
		}
	}
}

// SendDailyDigests sends each group a summary of the coming week. Skipped on
// weekends and holidays: nobody wants the Monday digest on Sunday.
func (s *ReminderService) SendDailyDigests() {
	if !s.schoolCal.IsSchoolDay(time.Now()) {
		logger.Debug().Msg("digest skipped, not a school day")
		return
	}

	groups, err := s.groups.ListActiveGroups()
	if err != nil {
		logger.Error().Err(err).Msg("digest: failed to list groups")
		return
	}

	for _, group := range groups {
		digest, err := s.buildGroupDigest(group.ID)
		if err != nil {
			logger.Warn().Err(err).Uint("group_id", group.ID).Msg("digest build failed")
			continue
		}
		if digest == "" {
			continue
		}

		members, err := s.groups.ListMembers(group.ID)
		if err != nil {
			continue
		}
		for _, member := range members {
			s.notifications.Notify(member.ID, "Weekly digest", digest)
		}
	}
}

func (s *ReminderService) buildGroupDigest(groupID uint) (string, error) {
	events, err := s.events.ListUpcoming(groupID, digestWindow)
	if err != nil {
		return "", err
	}

	var topics []models.Topic
	deadlineCutoff := time.Now().Add(digestWindow)
	err = s.db.Where("group_id = ? AND is_active = ? AND deadline IS NOT NULL AND deadline BETWEEN ? AND ?",
		groupID, true, time.Now(), deadlineCutoff).
		Order("deadline ASC").
		Find(&topics).Error
	if err != nil {
		return "", err
	}

	if len(events) == 0 && len(topics) == 0 {
		return "", nil
	}

	var b strings.Builder
	if len(events) > 0 {
		b.WriteString("Upcoming events:\n")
		for _, e := range events {
			fmt.Fprintf(&b, "- %s (%s) at %s\n", e.Title, e.Type, e.StartsAt.Format("Mon 02 Jan 15:04"))
		}
	}
	if len(topics) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Topic selection deadlines:\n")
		for _, t := range topics {
			fmt.Fprintf(&b, "- %s, until %s\n", t.Title, t.Deadline.Format("Mon 02 Jan 15:04"))
		}
	}
	return b.String(), nil
}

// SendEventReminders notifies group members about events starting within the
// next day. Each event is reminded once.
func (s *ReminderService) SendEventReminders() {
	events, err := s.events.DueForReminder(reminderWindow)
	if err != nil {
		logger.Error().Err(err).Msg("reminder: failed to fetch due events")
		return
	}

	for _, event := range events {
		members, err := s.groups.ListMembers(event.GroupID)
		if err != nil {
			continue
		}

		body := fmt.Sprintf("%s starts at %s", event.Title, event.StartsAt.Format("Mon 02 Jan 15:04"))
		if event.Description != "" {
			body += "\n" + event.Description
		}
		for _, member := range members {
			s.notifications.Notify(member.ID, "Reminder", body)
		}

		if err := s.events.MarkReminded(event.ID); err != nil {
			logger.Warn().Err(err).Uint("event_id", event.ID).Msg("failed to mark event reminded")
		}
	}

	if len(events) > 0 {
		logger.Infof("[Reminder] Sent reminders for %d events", len(events))
	}
}
