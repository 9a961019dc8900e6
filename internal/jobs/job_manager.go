package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	codeSweepJob             *CodeSweepJob
	notificationRetentionJob *NotificationRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	codeStore ports.CodeStore,
	purgeHandler commands.PurgeReadNotificationsCommandHandler,
	notificationRetention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		codeSweepJob:             NewCodeSweepJob(codeStore, logger),
		notificationRetentionJob: NewNotificationRetentionJob(purgeHandler, notificationRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.codeSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start code sweep job: %w", err)
	}

	if err := jm.notificationRetentionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.codeSweepJob.Stop()
		return fmt.Errorf("failed to start notification retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.notificationRetentionJob.Stop()
	jm.codeSweepJob.Stop()
}
