package jobs

import (
	"context"
	"log/slog"

	"forwarding/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// statusEventBatchSize is how many staged events one backfill run drains.
const statusEventBatchSize = 500

// StatusEventBackfillJob periodically drains the carrier status event staging
// table and applies the events to parcels. Runs every thirty seconds; carrier
// feeds arrive in bulk, so sub-minute latency is enough.
type StatusEventBackfillJob struct {
	handler commands.ApplyStatusEventsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatusEventBackfillJob creates a new backfill job.
func NewStatusEventBackfillJob(
	handler commands.ApplyStatusEventsCommandHandler,
	logger *slog.Logger,
) *StatusEventBackfillJob {
	return &StatusEventBackfillJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "status_event_backfill_job"),
	}
}

// Start schedules the backfill to run every thirty seconds.
func (j *StatusEventBackfillJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewApplyStatusEventsCommand(statusEventBatchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Status event backfill misconfigured", "error", cmdErr)
			return
		}

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Status event backfill failed", "error", handleErr)
			return
		}

		if result.Drained > 0 {
			j.logger.InfoContext(ctx, "Status event backfill run complete",
				"drained", result.Drained,
				"applied", result.Applied,
				"skipped", result.Skipped,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status event backfill job started (running every 30 seconds)")
	return nil
}

// Stop stops the backfill job.
func (j *StatusEventBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status event backfill job stopped")
}
