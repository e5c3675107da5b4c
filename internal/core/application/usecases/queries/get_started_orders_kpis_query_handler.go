package queries

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"

	"gorm.io/gorm"
)

// GetStartedOrdersKPIsQueryHandler computes the dashboard counters. "Today"
// is the current UTC calendar day.
type GetStartedOrdersKPIsQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetStartedOrdersKPIsQueryHandler(db *gorm.DB, clock ports.Clock) GetStartedOrdersKPIsQueryHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return GetStartedOrdersKPIsQueryHandler{db: db, clock: clock}
}

func (h GetStartedOrdersKPIsQueryHandler) Handle(
	ctx context.Context, query GetStartedOrdersKPIsQuery,
) (StartedOrdersKPIs, error) {
	if err := query.Validate(); err != nil {
		return StartedOrdersKPIs{}, err
	}

	dayStart, dayEnd := utcDay(h.clock.Now())
	open := statusCodes(order.OpenStatuses())
	scopeSQL, scopeArgs := scopeFilter(query.Scope(), "o.branch_id")
	db := h.db.WithContext(ctx)

	var kpis StartedOrdersKPIs
	args := append([]any{open, open, dayStart, dayEnd}, scopeArgs...)
	err := db.Raw(`
		SELECT
			COUNT(*) FILTER (WHERE o.status IN ?),
			COUNT(*) FILTER (WHERE o.status IN ? AND o.created_at >= ? AND o.created_at < ?)
		FROM orders o
		WHERE `+scopeSQL, args...).Row().Scan(&kpis.TotalActive, &kpis.StartedToday)
	if err != nil {
		return StartedOrdersKPIs{}, err
	}

	args = append([]any{dayStart, dayEnd}, scopeArgs...)
	err = db.Raw(`
		SELECT COUNT(*)
		FROM (
			SELECT v.plate_number
			FROM orders o
			JOIN vehicles v ON v.id = o.vehicle_id
			WHERE o.created_at >= ? AND o.created_at < ? AND `+scopeSQL+`
			GROUP BY v.plate_number
			HAVING COUNT(*) >= 2
		) repeated`, args...).Row().Scan(&kpis.RepeatedVehiclesToday)
	if err != nil {
		return StartedOrdersKPIs{}, err
	}

	return kpis, nil
}

func utcDay(now time.Time) (time.Time, time.Time) {
	start := now.UTC().Truncate(24 * time.Hour)
	return start, start.Add(24 * time.Hour)
}

func statusCodes(statuses []order.Status) []int {
	codes := make([]int, 0, len(statuses))
	for _, s := range statuses {
		codes = append(codes, int(s))
	}
	return codes
}
