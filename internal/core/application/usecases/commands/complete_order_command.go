package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand finishes an order. Past the overdue threshold it must
// carry a delay reason; comments are stored as the overrun note.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	scope         branch.Scope
	actor         string
	orderID       kernel.UUID
	delayReasonID *kernel.UUID
	comments      string

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(
	scope branch.Scope, actor string, orderID kernel.UUID, delayReasonID *kernel.UUID, comments string,
) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		scope:    scope,
		actor:    strings.TrimSpace(actor),
		comments: strings.TrimSpace(comments),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDelayReasonID(delayReasonID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}
	return cmd, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) Scope() branch.Scope { return c.scope }

func (c CompleteOrderCommand) Actor() string { return c.actor }

func (c CompleteOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CompleteOrderCommand) DelayReasonID() *kernel.UUID { return c.delayReasonID }

func (c CompleteOrderCommand) Comments() string { return c.comments }

func (c *CompleteOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	c.orderID = id
	return nil
}

func (c *CompleteOrderCommand) setDelayReasonID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("delay_reason_id", err)
	}
	reasonID := *id
	c.delayReasonID = &reasonID
	return nil
}
