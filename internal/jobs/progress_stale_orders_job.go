package jobs

import (
	"context"
	"log/slog"
	"sync"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/pkg/observability"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep once a minute.
const DefaultSweepSchedule = "0 * * * * *"

const progressStaleOrdersJobName = "progress_stale_orders"

// StaleOrdersSweeper is implemented by commands.ProgressStaleOrdersCommandHandler.
type StaleOrdersSweeper interface {
	Handle(ctx context.Context) (commands.ProgressStaleOrdersResult, error)
}

// ProgressStaleOrdersJob moves created orders to in_progress and long-running
// orders to overdue on a cron schedule.
type ProgressStaleOrdersJob struct {
	sweeper  StaleOrdersSweeper
	schedule string
	metrics  *observability.Metrics
	cron     *cron.Cron
	logger   *slog.Logger

	// running skips a tick while the previous sweep is still going.
	running sync.Mutex
}

// NewProgressStaleOrdersJob uses DefaultSweepSchedule for an empty schedule.
// The schedule has a seconds field.
func NewProgressStaleOrdersJob(
	sweeper StaleOrdersSweeper,
	schedule string,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *ProgressStaleOrdersJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &ProgressStaleOrdersJob{
		sweeper:  sweeper,
		schedule: schedule,
		metrics:  metrics,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "progress_stale_orders_job"),
	}
}

func (j *ProgressStaleOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale orders job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep. Overlapping calls return immediately.
func (j *ProgressStaleOrdersJob) Run(ctx context.Context) {
	if !j.running.TryLock() {
		j.logger.WarnContext(ctx, "Previous sweep still running, skipping")
		return
	}
	defer j.running.Unlock()

	tracker := j.metrics.Track(progressStaleOrdersJobName)
	result, err := j.sweeper.Handle(ctx)
	if err = tracker.End(err); err != nil {
		j.logger.ErrorContext(ctx, "Stale orders job failed", "error", err)
		return
	}

	if result.Started > 0 || result.MarkedOverdue > 0 {
		j.logger.InfoContext(ctx, "Stale orders progressed",
			"started", result.Started,
			"marked_overdue", result.MarkedOverdue,
		)
	}
}

// Stop waits for a running sweep to finish.
func (j *ProgressStaleOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale orders job stopped")
}
