package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/repository"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
)

// ReminderScheduler runs the periodic billing due-date reminder and token
// blacklist cleanup jobs
type ReminderScheduler struct {
	billingService   service.BillingService
	authService      service.AuthService
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(billingService service.BillingService, authService service.AuthService, schedulerLogRepo repository.SchedulerLogRepository, logger *logger.Logger, cronExpression string) *ReminderScheduler {
	// Cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &ReminderScheduler{
		billingService:   billingService,
		authService:      authService,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling due reminder job")
	_, err := s.cron.AddFunc(s.cronExpression, s.generateDueReminders)
	if err != nil {
		return fmt.Errorf("failed to schedule due reminder job: %w", err)
	}

	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling token blacklist cleanup job")
	_, err = s.cron.AddFunc(s.cronExpression, s.purgeExpiredTokens)
	if err != nil {
		return fmt.Errorf("failed to schedule token blacklist cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Reminder scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler stopped successfully")
}

// generateDueReminders is the scheduled job that notifies residents about
// billings that are due soon or overdue
func (s *ReminderScheduler) generateDueReminders() {
	jobCode := "BILLING_DUE_REMINDERS"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(jobCode, docID, "Starting scheduled due reminder run", "START", &now)
	s.logger.Info("Starting scheduled due reminder run...")

	s.logScheduler(jobCode, docID, "Classifying unsettled billings against their due dates", "RUNNING", &now)

	summary, err := s.billingService.GenerateDueReminders(now)
	if err != nil {
		failedMessage := fmt.Sprintf("Due reminder run failed: %v", err)
		s.logScheduler(jobCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithError(err).Error("Due reminder run failed")
		return
	}

	summaryJSON, _ := json.Marshal(summary)
	successMessage := fmt.Sprintf("Due reminder run completed: %s", string(summaryJSON))
	s.logScheduler(jobCode, docID, successMessage, "SUCCESS", &now)

	s.logger.WithFields(map[string]interface{}{
		"checked":  summary.Checked,
		"due_soon": summary.DueSoonCount,
		"overdue":  summary.OverdueCount,
		"skipped":  summary.SkippedCount,
	}).Info("Scheduled due reminder run completed")
}

// purgeExpiredTokens is the scheduled job that prunes blacklist rows for
// tokens that expired on their own
func (s *ReminderScheduler) purgeExpiredTokens() {
	jobCode := "TOKEN_BLACKLIST_CLEANUP"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(jobCode, docID, "Starting token blacklist cleanup run", "START", &now)
	s.logger.Info("Starting token blacklist cleanup run...")

	if err := s.authService.PurgeExpiredTokens(now); err != nil {
		failedMessage := fmt.Sprintf("Token blacklist cleanup failed: %v", err)
		s.logScheduler(jobCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithError(err).Error("Token blacklist cleanup failed")
		return
	}

	s.logScheduler(jobCode, docID, "Token blacklist cleanup completed", "SUCCESS", &now)
	s.logger.Info("Token blacklist cleanup completed")
}

// logScheduler creates a new log entry in the database
func (s *ReminderScheduler) logScheduler(jobCode, documentID, message, status string, createdAt *time.Time) {
	logEntry := &models.SchedulerLog{
		DocumentID: &documentID,
		JobCode:    &jobCode,
		Message:    &message,
		Status:     &status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	if err := s.schedulerLogRepo.Create(logEntry); err != nil {
		s.logger.WithError(err).Error("Failed to write scheduler log entry")
	}
}
