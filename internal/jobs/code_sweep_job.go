package jobs

import (
	"context"
	"log/slog"

	"freelance/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const codeSweepSchedule = "0 * * * * *"

// CodeSweepJob removes expired verification codes from the code store.
type CodeSweepJob struct {
	store  ports.CodeStore
	cron   *cron.Cron
	logger *slog.Logger
}

func NewCodeSweepJob(store ports.CodeStore, logger *slog.Logger) *CodeSweepJob {
	return &CodeSweepJob{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "code_sweep_job"),
	}
}

func (j *CodeSweepJob) Start() error {
	if _, err := j.cron.AddFunc(codeSweepSchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Code sweep job started", "schedule", codeSweepSchedule)
	return nil
}

func (j *CodeSweepJob) run(ctx context.Context) {
	removed, err := j.store.SweepExpired(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Code sweep failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.DebugContext(ctx, "Expired verification codes removed", "count", removed)
	}
}

func (j *CodeSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Code sweep job stopped")
}
