// Package jobs provides scheduled background tasks for the forwarding system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the forwarding service.
//
// # Available Jobs
//
// 1. StatusEventBackfillJob - Runs every thirty seconds to drain staged
// carrier status events and apply them to parcels
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(applyStatusEventsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The backfill job logs failures and retries on the next tick; the batch
// itself is transactional, so a failed run never half-applies events
// - Failed job starts will stop any already running jobs
package jobs
