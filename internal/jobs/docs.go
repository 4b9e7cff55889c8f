// Package jobs provides scheduled background tasks for the shop service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob - publishes pending outbox messages (order events) to Kafka.
// The schedule is a six-field cron expression with seconds, five seconds by
// default, configured through OUTBOX_RELAY_SCHEDULE.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay := jobs.NewOutboxRelayJob(publishOutboxHandler, cfg.OutboxRelaySchedule, cfg.OutboxBatchSize, logger)
//	jobManager := jobs.NewJobManager(logger, relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Messages that keep
// failing are skipped once they reach the outbox attempt limit.
// Failed job starts stop any already running jobs.
package jobs
