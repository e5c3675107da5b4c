// Package ports defines the contracts between the order lifecycle core and
// its infrastructure: repositories, the unit of work, the vehicle lock and
// the event publisher.
//
// Every read made on behalf of a caller takes a resolved branch.Scope. A record
// outside the scope is reported exactly like a missing one.
package ports

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their line items.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order if it exists inside scope, otherwise an
	// *errs.ObjectNotFoundError.
	Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*order.Order, error)

	// FindLatestByVehicle returns the most recently created order of the vehicle
	// in one of the given statuses.
	FindLatestByVehicle(ctx context.Context, vehicleID kernel.UUID, statuses ...order.Status) (*order.Order, error)

	// FindLatestStartedByVehicle returns the vehicle's order in one of the given
	// statuses with the most recent start time.
	FindLatestStartedByVehicle(ctx context.Context, vehicleID kernel.UUID, statuses ...order.Status) (*order.Order, error)

	// ListCreatedBefore returns orders still in Created status that were created before cutoff.
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// ListInProgressStartedBefore returns in-progress orders started before cutoff.
	ListInProgressStartedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
