// Package jobs provides scheduled background tasks for the order tracker.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field in the schedule.
//
// # Available Jobs
//
// ProgressStaleOrdersJob runs the lifecycle sweep: created orders older than
// the start grace period become in_progress, in_progress orders past the
// overdue threshold become overdue. The default schedule is once a minute and
// can be changed with SWEEP_SCHEDULE.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SweepSchedule, metrics, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and counted in tracker_job_runs_total with
// status "failure". The next tick retries. A tick that fires while a sweep
// is still running is skipped.
package jobs
