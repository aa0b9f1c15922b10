// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations alongside the synchronous order API.
//
// # Available Jobs
//
// 1. OrderStatsJob - Samples order counts per status into a Prometheus gauge
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(db, metrics, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The stats job runs every 15 seconds. Sampling is cheap (one grouped count
// over the orders table), so the interval trades freshness against load.
//
// # Error Handling
//
// - Sampling errors are logged and the next tick retries from scratch
// - Failed job starts will stop any already running jobs
package jobs
