// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CodeSweepJob - Runs every minute and drops expired verification codes
// 2. NotificationRetentionJob - Runs nightly and purges old read notifications
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(codeStore, purgeHandler, retention, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format (with seconds). A Redis backed
// code store expires codes natively; the sweep then finds nothing to do.
//
// # Error Handling
//
// Failures are logged and the job keeps its schedule. Failed job starts stop
// any already running jobs.
package jobs
