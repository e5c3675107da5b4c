package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Handle(ctx context.Context) (commands.ProgressStaleOrdersResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(commands.ProgressStaleOrdersResult), args.Error(1)
}

func scrape(t *testing.T, metrics *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestProgressStaleOrdersJob_RunLogsCounts(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	metrics := observability.NewMetrics()

	sweeper := new(MockSweeper)
	sweeper.On("Handle", mock.Anything).
		Return(commands.ProgressStaleOrdersResult{Started: 2, MarkedOverdue: 1}, nil).Once()

	job := NewProgressStaleOrdersJob(sweeper, "", metrics, logger)
	job.Run(context.Background())

	sweeper.AssertExpectations(t)
	assert.Contains(t, logs.String(), "Stale orders progressed")
	assert.Contains(t, logs.String(), "started=2")
	assert.Contains(t, logs.String(), "marked_overdue=1")
	assert.Contains(t, scrape(t, metrics), `tracker_job_runs_total{job="progress_stale_orders",status="success"} 1`)
}

func TestProgressStaleOrdersJob_QuietWhenNothingChanged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	sweeper := new(MockSweeper)
	sweeper.On("Handle", mock.Anything).Return(commands.ProgressStaleOrdersResult{}, nil).Once()

	NewProgressStaleOrdersJob(sweeper, "", nil, logger).Run(context.Background())

	sweeper.AssertExpectations(t)
	assert.NotContains(t, logs.String(), "Stale orders progressed")
}

func TestProgressStaleOrdersJob_FailureIsCounted(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	metrics := observability.NewMetrics()

	sweeper := new(MockSweeper)
	sweeper.On("Handle", mock.Anything).
		Return(commands.ProgressStaleOrdersResult{}, errors.New("connection reset")).Once()

	NewProgressStaleOrdersJob(sweeper, "", metrics, logger).Run(context.Background())

	assert.Contains(t, logs.String(), "Stale orders job failed")
	assert.Contains(t, scrape(t, metrics), `tracker_job_runs_total{job="progress_stale_orders",status="failure"} 1`)
}

func TestProgressStaleOrdersJob_SkipsOverlappingRun(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	release := make(chan struct{})
	entered := make(chan struct{})

	sweeper := new(MockSweeper)
	sweeper.On("Handle", mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(commands.ProgressStaleOrdersResult{}, nil).Once()

	job := NewProgressStaleOrdersJob(sweeper, "", nil, logger)

	done := make(chan struct{})
	go func() {
		job.Run(context.Background())
		close(done)
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("sweep did not start")
	}

	job.Run(context.Background())
	close(release)
	<-done

	sweeper.AssertNumberOfCalls(t, "Handle", 1)
}

func TestProgressStaleOrdersJob_RejectsBadSchedule(t *testing.T) {
	job := NewProgressStaleOrdersJob(new(MockSweeper), "every minute", nil, slog.New(slog.DiscardHandler))

	require.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	manager := NewJobManager(new(MockSweeper), "0 0 0 1 1 *", nil, slog.New(slog.DiscardHandler))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
