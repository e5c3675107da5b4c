package jobs

import (
	"fmt"
	"log/slog"

	"tracker/internal/pkg/observability"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	progressStaleOrdersJob *ProgressStaleOrdersJob
}

// NewJobManager wires the jobs to their handlers.
func NewJobManager(
	sweeper StaleOrdersSweeper,
	sweepSchedule string,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		progressStaleOrdersJob: NewProgressStaleOrdersJob(sweeper, sweepSchedule, metrics, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.progressStaleOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale orders job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.progressStaleOrdersJob.Stop()
}
