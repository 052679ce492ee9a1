package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultRedeliverySchedule runs the redelivery every thirty seconds.
const DefaultRedeliverySchedule = "*/30 * * * * *"

// Redeliverer retries order status notifications that failed to publish.
type Redeliverer interface {
	Redeliver(ctx context.Context) int
	Pending() int
}

// NotificationRedeliveryJob periodically republishes queued notifications.
type NotificationRedeliveryJob struct {
	redeliverer Redeliverer
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewNotificationRedeliveryJob creates the job. schedule is a six field cron
// expression (with seconds); empty means DefaultRedeliverySchedule.
func NewNotificationRedeliveryJob(
	redeliverer Redeliverer,
	schedule string,
	logger *slog.Logger,
) *NotificationRedeliveryJob {
	if schedule == "" {
		schedule = DefaultRedeliverySchedule
	}
	return &NotificationRedeliveryJob{
		redeliverer: redeliverer,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "notification_redelivery_job"),
	}
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *NotificationRedeliveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification redelivery job started", "schedule", j.schedule)
	return nil
}

// RunOnce redelivers whatever is pending.
func (j *NotificationRedeliveryJob) RunOnce(ctx context.Context) {
	pending := j.redeliverer.Pending()
	if pending == 0 {
		return
	}

	delivered := j.redeliverer.Redeliver(ctx)
	j.logger.InfoContext(ctx, "Redelivered order notifications",
		"pending", pending,
		"delivered", delivered,
	)
}

// Stop stops scheduling and waits for a running redelivery to finish.
func (j *NotificationRedeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification redelivery job stopped")
}
