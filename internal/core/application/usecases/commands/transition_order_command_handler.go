package commands

import (
	"context"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
)

type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle applies the transition and returns the resulting status.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Scope(), cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	now := h.clock.Now()
	if cmd.Target() == order.Cancelled {
		err = o.Cancel(cmd.CancellationReason(), cmd.Actor(), now)
	} else {
		err = o.Transition(cmd.Target(), cmd.Actor(), now)
	}
	if err != nil {
		return order.Unknown, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return order.Unknown, err
	}
	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}
	return o.Status(), nil
}
