package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrRecordOverrunReasonCommandIsNotConstructed = errors.New(
	"RecordOverrunReasonCommand must be created via NewRecordOverrunReasonCommand constructor",
)

// RecordOverrunReasonCommand stores the free-text overrun comment of an order.
type RecordOverrunReasonCommand struct { //nolint:recvcheck //using for validation
	scope   branch.Scope
	actor   string
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewRecordOverrunReasonCommand(
	scope branch.Scope, actor string, orderID kernel.UUID, reason string,
) (RecordOverrunReasonCommand, error) {
	cmd := RecordOverrunReasonCommand{
		scope: scope,
		actor: strings.TrimSpace(actor),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RecordOverrunReasonCommand{}, err
	}
	return cmd, nil
}

func (c RecordOverrunReasonCommand) Validate() error {
	return c.guard.Validate(ErrRecordOverrunReasonCommandIsNotConstructed)
}

func (c RecordOverrunReasonCommand) Scope() branch.Scope { return c.scope }

func (c RecordOverrunReasonCommand) Actor() string { return c.actor }

func (c RecordOverrunReasonCommand) OrderID() kernel.UUID { return c.orderID }

func (c RecordOverrunReasonCommand) Reason() string { return c.reason }

func (c *RecordOverrunReasonCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	c.orderID = id
	return nil
}

func (c *RecordOverrunReasonCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("overrun_reason")
	}
	c.reason = reason
	return nil
}
