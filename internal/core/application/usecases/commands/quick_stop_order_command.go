package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrQuickStopOrderCommandIsNotConstructed = errors.New(
	"QuickStopOrderCommand must be created via NewQuickStopOrderCommand constructor",
)

// QuickStopOrderCommand completes an order without signature capture.
type QuickStopOrderCommand struct { //nolint:recvcheck //using for validation
	scope   branch.Scope
	actor   string
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewQuickStopOrderCommand(scope branch.Scope, actor string, orderID kernel.UUID) (QuickStopOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return QuickStopOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	return QuickStopOrderCommand{
		scope:   scope,
		actor:   strings.TrimSpace(actor),
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c QuickStopOrderCommand) Validate() error {
	return c.guard.Validate(ErrQuickStopOrderCommandIsNotConstructed)
}

func (c QuickStopOrderCommand) Scope() branch.Scope { return c.scope }

func (c QuickStopOrderCommand) Actor() string { return c.actor }

func (c QuickStopOrderCommand) OrderID() kernel.UUID { return c.orderID }
