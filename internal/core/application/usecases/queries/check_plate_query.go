package queries

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/pkg/guard"
)

var ErrCheckPlateQueryIsNotConstructed = errors.New(
	"CheckPlateQuery must be created via NewCheckPlateQuery constructor",
)

// CheckPlateQuery asks whether a plate is already known inside the caller's scope.
// A blank plate is allowed and simply reports not found.
type CheckPlateQuery struct {
	scope branch.Scope
	plate string

	guard guard.ConstructorGuard
}

func NewCheckPlateQuery(scope branch.Scope, plate string) CheckPlateQuery {
	return CheckPlateQuery{
		scope: scope,
		plate: strings.ToUpper(strings.TrimSpace(plate)),
		guard: guard.NewConstructorGuard(),
	}
}

func (q CheckPlateQuery) Validate() error {
	return q.guard.Validate(ErrCheckPlateQueryIsNotConstructed)
}

func (q CheckPlateQuery) Scope() branch.Scope { return q.scope }

func (q CheckPlateQuery) Plate() string { return q.plate }

// CheckPlateQueryResponse carries the owner and vehicle when the plate is known.
type CheckPlateQueryResponse struct {
	Found    bool
	Customer *CustomerSummary
	Vehicle  *VehicleSummary
}
