package queries

import (
	"context"
	"database/sql"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStartedOrdersQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewListStartedOrdersQueryHandler(db *gorm.DB, clock ports.Clock) ListStartedOrdersQueryHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return ListStartedOrdersQueryHandler{db: db, clock: clock}
}

func (h ListStartedOrdersQueryHandler) Handle(
	ctx context.Context, query ListStartedOrdersQuery,
) (ListStartedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListStartedOrdersQueryResponse{}, err
	}

	scopeSQL, args := scopeFilter(query.Scope(), "o.branch_id")
	where := scopeSQL

	if query.Status() != order.Unknown {
		where += " AND o.status = ?"
		args = append(args, int(query.Status()))
	} else {
		dayStart, dayEnd := utcDay(h.clock.Now())
		where += " AND (o.status IN ? OR (o.status = ? AND o.completed_at >= ? AND o.completed_at < ?))"
		args = append(args, statusCodes(order.OpenStatuses()), int(order.Completed), dayStart, dayEnd)
	}

	if query.Search() != "" {
		pattern := "%" + escapeLike(query.Search()) + "%"
		where += " AND (v.plate_number ILIKE ? OR c.full_name ILIKE ?)"
		args = append(args, pattern, pattern)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.type,
			o.status,
			o.priority,
			v.plate_number,
			c.full_name,
			o.estimated_duration,
			o.created_at,
			o.started_at,
			o.completed_at
		FROM orders o
		LEFT JOIN vehicles v ON v.id = o.vehicle_id
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE `+where+`
		ORDER BY `+getSortClauses()[query.Sort()], args...).Rows()
	if err != nil {
		return ListStartedOrdersQueryResponse{}, err
	}
	defer rows.Close()

	result := make([]StartedOrderRow, 0)
	for rows.Next() {
		var (
			id                  uuid.UUID
			kind, priority      string
			status              int
			plate, customerName sql.NullString
			row                 StartedOrderRow
		)
		err = rows.Scan(
			&id,
			&row.Number,
			&kind,
			&status,
			&priority,
			&plate,
			&customerName,
			&row.EstimatedDuration,
			&row.CreatedAt,
			&row.StartedAt,
			&row.CompletedAt,
		)
		if err != nil {
			return ListStartedOrdersQueryResponse{}, err
		}
		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListStartedOrdersQueryResponse{}, err
		}
		row.Type = order.Type(kind)
		row.Status = order.Status(status)
		row.Priority = order.Priority(priority)
		row.PlateNumber = plate.String
		row.CustomerName = customerName.String
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return ListStartedOrdersQueryResponse{}, err
	}

	return ListStartedOrdersQueryResponse{Orders: result, ByPlate: groupByPlate(result)}, nil
}
