package jobs

import (
	"context"
	"log/slog"

	"tableorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionCleanupJob periodically sweeps idle table sessions so abandoned
// carts do not accumulate in memory for the lifetime of the process.
type SessionCleanupJob struct {
	handler commands.CleanUpSessionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionCleanupJob creates a job that sweeps idle sessions once a minute.
func NewSessionCleanupJob(handler commands.CleanUpSessionsCommandHandler, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "session_cleanup_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCleanUpSessionsCommand()

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", err)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Swept idle table sessions", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every minute)")
	return nil
}

// Stop stops the session cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
