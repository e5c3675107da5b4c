package commands

import (
	"context"

	"tracker/internal/core/ports"
)

type RecordOverrunReasonCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewRecordOverrunReasonCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) RecordOverrunReasonCommandHandler {
	return RecordOverrunReasonCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle stores the note. The first reporter and time are kept on later edits.
func (h *RecordOverrunReasonCommandHandler) Handle(ctx context.Context, cmd RecordOverrunReasonCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Scope(), cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.RecordOverrunReason(cmd.Reason(), cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
