package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"studyhub-backend/internal/logger"
	"studyhub-backend/internal/repository"
)

const (
	reminderLastSentKey  = "study_reminders_last_sent_at"
	reminderInterval     = 24 * time.Hour
	reminderPollInterval = 1 * time.Hour
)

// ReminderScheduler periodically emails each user their upcoming study
// sessions. The last-sent timestamp lives in Redis so restarts don't
// double-send.
type ReminderScheduler struct {
	userRepo    *repository.UserRepo
	sessionRepo *repository.StudySessionRepo
	email       *EmailService
	redis       *redis.Client
	log         *logger.Logger
	stopChan    chan struct{}
}

func NewReminderScheduler(
	userRepo *repository.UserRepo,
	sessionRepo *repository.StudySessionRepo,
	email *EmailService,
	redisClient *redis.Client,
	log *logger.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		email:       email,
		redis:       redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	go s.loop()
	s.log.Info("reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *ReminderScheduler) loop() {
	// Run on startup as well as by interval.
	s.run(context.Background())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.run(context.Background())
		}
	}
}

func (s *ReminderScheduler) run(ctx context.Context) {
	if !s.due(ctx) {
		return
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("reminder scheduler: list users", "error", err)
		return
	}

	sent := 0
	for i := range users {
		sessions, err := s.sessionRepo.ListUpcoming(ctx, users[i].ID)
		if err != nil {
			s.log.Error("reminder scheduler: list sessions", "user_id", users[i].ID, "error", err)
			continue
		}
		if len(sessions) == 0 {
			continue
		}
		if err := s.email.SendStudyReminder(users[i].Email, users[i].FullName, sessions); err != nil {
			s.log.Error("reminder scheduler: send", "user_id", users[i].ID, "error", err)
			continue
		}
		sent++
	}

	s.redis.Set(ctx, reminderLastSentKey, time.Now().UTC().Format(time.RFC3339), 0)
	s.log.Info("study reminders sent", "count", sent)
}

func (s *ReminderScheduler) due(ctx context.Context) bool {
	raw, err := s.redis.Get(ctx, reminderLastSentKey).Result()
	if err != nil {
		return true
	}
	last, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	return time.Since(last) >= reminderInterval
}
