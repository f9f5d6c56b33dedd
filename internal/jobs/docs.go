// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for parcel logistics.
//
// # Available Jobs
//
// 1. PickupAssignmentJob - Runs every five minutes to pack unplanned pickup
// parcels into next-day morning rounds of the pickup fleet
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(schedulePickupsHandler, logger)
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
// The pickup assignment job uses the cron expression "0 */5 * * * *", running
// at the top of every fifth minute. Parcels that do not fit into any vehicle
// stay pending and are retried on the next run, so a moderate cadence is
// enough.
//
// # Error Handling
//
// - The assignment job ignores expected business errors (nothing pending, no free fleet)
// - Failed job starts will stop any already running jobs
package jobs
