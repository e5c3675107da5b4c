package commands

import (
	"context"
	"log/slog"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
)

// QuickStopOrderCommandHandler completes an order directly, skipping the
// delay reason requirement.
type QuickStopOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	adjuster   OrderStockAdjuster
	clock      ports.Clock
	logger     *slog.Logger
}

func NewQuickStopOrderCommandHandler(
	uowFactory OrderUoWFactory,
	adjuster OrderStockAdjuster,
	clock ports.Clock,
	logger *slog.Logger,
) QuickStopOrderCommandHandler {
	return QuickStopOrderCommandHandler{
		uowFactory: uowFactory,
		adjuster:   adjuster,
		clock:      clock,
		logger:     logger.With("component", "QuickStopOrderCommandHandler"),
	}
}

func (h *QuickStopOrderCommandHandler) Handle(ctx context.Context, cmd QuickStopOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Scope(), cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = o.QuickStop(cmd.Actor(), h.clock.Now()); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	if _, _, _, pending := o.StockAdjustment(); pending {
		applyStockBestEffort(ctx, h.adjuster, h.logger, o.ID())
	}
	return o.ID(), nil
}
