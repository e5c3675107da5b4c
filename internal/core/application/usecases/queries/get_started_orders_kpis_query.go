package queries

import (
	"errors"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/pkg/guard"
)

var ErrGetStartedOrdersKPIsQueryIsNotConstructed = errors.New(
	"GetStartedOrdersKPIsQuery must be created via NewGetStartedOrdersKPIsQuery constructor",
)

type GetStartedOrdersKPIsQuery struct {
	scope branch.Scope

	guard guard.ConstructorGuard
}

func NewGetStartedOrdersKPIsQuery(scope branch.Scope) GetStartedOrdersKPIsQuery {
	return GetStartedOrdersKPIsQuery{scope: scope, guard: guard.NewConstructorGuard()}
}

func (q GetStartedOrdersKPIsQuery) Validate() error {
	return q.guard.Validate(ErrGetStartedOrdersKPIsQueryIsNotConstructed)
}

func (q GetStartedOrdersKPIsQuery) Scope() branch.Scope { return q.scope }

// StartedOrdersKPIs are the dashboard counters.
type StartedOrdersKPIs struct {
	// TotalActive counts orders in created, in_progress or overdue.
	TotalActive int
	// StartedToday counts active orders created today.
	StartedToday int
	// RepeatedVehiclesToday counts plates with two or more orders created today.
	RepeatedVehiclesToday int
}
