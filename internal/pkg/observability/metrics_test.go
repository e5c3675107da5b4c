package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	events []order.Event
}

func (p *capturingPublisher) Publish(_ context.Context, events ...order.Event) {
	p.events = append(p.events, events...)
}

func TestMetrics_EchoMiddlewareUsesRouteTemplate(t *testing.T) {
	m := NewMetrics()
	e := echo.New()
	e.Use(m.EchoMiddleware())
	e.GET("/api/v1/orders/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/missing", func(_ echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	for _, path := range []string{"/api/v1/orders/1", "/api/v1/orders/2", "/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/v1/orders/:id", "GET", "204")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/missing", "GET", "404")), 0)
}

func TestMetrics_InstrumentPublisherCountsAndForwards(t *testing.T) {
	m := NewMetrics()
	next := &capturingPublisher{}
	publisher := m.InstrumentPublisher(next)

	event := order.Event{
		Type:      order.EventStatusChanged,
		OrderID:   kernel.NewUUID(),
		OrderType: order.Sales,
		From:      order.InProgress,
		To:        order.Completed,
	}
	publisher.Publish(context.Background(), event, event)

	assert.Len(t, next.events, 2)
	assert.InDelta(t, 2, testutil.ToFloat64(m.orderEvents.WithLabelValues("order.status_changed", "sales", "completed")), 0)
}

func TestMetrics_InstrumentPublisherWithoutNext(t *testing.T) {
	m := NewMetrics()
	publisher := m.InstrumentPublisher(nil)

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), order.Event{Type: order.EventCreated, To: order.Created})
	})
}

func TestJobTracker_End(t *testing.T) {
	m := NewMetrics()

	require.NoError(t, m.Track("progress_stale_orders").End(nil))
	failure := errors.New("db down")
	require.ErrorIs(t, m.Track("progress_stale_orders").End(failure), failure)

	assert.InDelta(t, 1, testutil.ToFloat64(m.jobRuns.WithLabelValues("progress_stale_orders", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.jobRuns.WithLabelValues("progress_stale_orders", "failure")), 0)
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	require.NoError(t, m.Track("progress_stale_orders").End(nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "tracker_job_runs_total")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, m.Track("job").End(nil))
}
