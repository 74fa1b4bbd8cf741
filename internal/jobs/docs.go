// Package jobs provides scheduled background tasks for the order workflow
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order processing.
//
// # Available Jobs
//
// 1. StalledOrderJob - Runs every minute to report orders that have been
// waiting on an external step longer than the configured threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(stalledOrdersHandler, stallThreshold, logger)
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
// The stalled-order job uses the cron expression "0 * * * * *" which means it
// runs at the start of every minute. Stalls develop over minutes or hours, so
// a tighter schedule would only repeat the same findings.
//
// # Error Handling
//
// The stalled-order job is an observer: it logs what it finds and never
// advances, cancels, or otherwise mutates an order. A workflow run waits on
// its next external signal indefinitely; this job exists so that operators
// notice the wait.
package jobs
