package commands

import (
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand starts, flags or cancels an order. Completion goes
// through CompleteOrderCommand so the delay check can run.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	scope   branch.Scope
	actor   string
	orderID kernel.UUID
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand requires a cancellation reason when the target is cancelled.
func NewTransitionOrderCommand(
	scope branch.Scope, actor string, orderID kernel.UUID, target string, cancellationReason string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		scope:  scope,
		actor:  strings.TrimSpace(actor),
		reason: strings.TrimSpace(cancellationReason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}
	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Scope() branch.Scope { return c.scope }

func (c TransitionOrderCommand) Actor() string { return c.actor }

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c TransitionOrderCommand) Target() order.Status { return c.target }

func (c TransitionOrderCommand) CancellationReason() string { return c.reason }

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setTarget(raw string) error {
	target, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}

	//nolint:exhaustive // remaining targets are accepted as is
	switch target {
	case order.Created, order.Completed:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s cannot be requested directly", target))
	case order.Cancelled:
		if c.reason == "" {
			return errs.NewValueIsRequiredError("cancellation_reason")
		}
	}
	c.target = target
	return nil
}
