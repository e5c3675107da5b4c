package order

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
)

// EventType names a lifecycle fact.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
	EventStockAdjusted EventType = "order.stock_adjusted"
)

// Event is recorded by the aggregate and published once the surrounding
// transaction has committed.
type Event struct {
	Type        EventType
	OrderID     kernel.UUID
	OrderNumber string
	BranchID    kernel.UUID
	OrderType   Type
	From        Status
	To          Status
	Actor       string
	OccurredAt  time.Time
}

func (o *Order) raise(eventType EventType, from Status, actor string, at time.Time) {
	o.events = append(o.events, Event{
		Type:        eventType,
		OrderID:     o.id,
		OrderNumber: o.number.String(),
		BranchID:    o.branchID,
		OrderType:   o.kind,
		From:        from,
		To:          o.status,
		Actor:       actor,
		OccurredAt:  at,
	})
}

// Events returns the facts recorded since the last ClearEvents.
func (o *Order) Events() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

// ClearEvents drops recorded facts after they have been published.
func (o *Order) ClearEvents() {
	o.events = nil
}
