// Package jobs provides scheduled background tasks for the order tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SubscriberSweepJob - Unregisters live-tracking subscribers whose
// connection closed without a clean teardown and records the registry size.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(registry, jobs.DefaultSweepSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules carry a seconds field. The sweep runs every 30 seconds by default;
// the broadcaster already prunes failed subscribers, so the sweep only
// catches handles that no broadcast has touched since they closed.
package jobs
