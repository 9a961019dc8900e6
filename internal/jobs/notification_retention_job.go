package jobs

import (
	"context"
	"log/slog"
	"time"

	"freelance/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const notificationRetentionSchedule = "0 0 3 * * *"

// NotificationRetentionJob purges read notifications older than the
// configured retention once a night.
type NotificationRetentionJob struct {
	handler   commands.PurgeReadNotificationsCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationRetentionJob(
	handler commands.PurgeReadNotificationsCommandHandler, retention time.Duration, logger *slog.Logger,
) *NotificationRetentionJob {
	return &NotificationRetentionJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_retention_job"),
	}
}

func (j *NotificationRetentionJob) Start() error {
	// A bad retention fails the start.
	if _, err := commands.NewPurgeReadNotificationsCommand(j.retention); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(notificationRetentionSchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retention job started",
		"schedule", notificationRetentionSchedule,
		"retention", j.retention,
	)
	return nil
}

func (j *NotificationRetentionJob) run(ctx context.Context) {
	cmd, err := commands.NewPurgeReadNotificationsCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification retention misconfigured", "error", err)
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification retention failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Read notifications purged", "count", removed)
}

func (j *NotificationRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification retention job stopped")
}
