package queries

import (
	"errors"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrGetOrderViewQueryIsNotConstructed = errors.New(
	"GetOrderViewQuery must be created via NewGetOrderViewQuery constructor",
)

type GetOrderViewQuery struct {
	scope   branch.Scope
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderViewQuery(scope branch.Scope, orderID kernel.UUID) (GetOrderViewQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderViewQuery{}, errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	return GetOrderViewQuery{scope: scope, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderViewQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderViewQueryIsNotConstructed)
}

func (q GetOrderViewQuery) Scope() branch.Scope { return q.scope }

func (q GetOrderViewQuery) OrderID() kernel.UUID { return q.orderID }
