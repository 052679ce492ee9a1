package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationRedeliveryJob *NotificationRedeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(redeliverer Redeliverer, redeliverySchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationRedeliveryJob: NewNotificationRedeliveryJob(redeliverer, redeliverySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRedeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification redelivery job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationRedeliveryJob.Stop()
}
