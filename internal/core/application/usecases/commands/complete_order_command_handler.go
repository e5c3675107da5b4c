package commands

import (
	"context"
	"log/slog"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// CompleteOrderResult reports the completed order.
type CompleteOrderResult struct {
	OrderNumber       string
	ActualDuration    *int
	ExceededThreshold bool
}

// CompleteOrderCommandHandler runs the delay check and the completion in one
// transaction, then applies the stock decrement of sales orders.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	tracker    services.DelayTracker
	adjuster   OrderStockAdjuster
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	tracker services.DelayTracker,
	adjuster OrderStockAdjuster,
	clock ports.Clock,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		adjuster:   adjuster,
		clock:      clock,
		logger:     logger.With("component", "CompleteOrderCommandHandler"),
	}
}

// Handle completes the order. An already completed order is returned as is.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (CompleteOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Scope(), cmd.OrderID())
	if err != nil {
		return CompleteOrderResult{}, err
	}
	if o.Status() == order.Completed {
		return completeResult(o), nil
	}

	now := h.clock.Now()
	submission := services.DelaySubmission{
		ReasonID: cmd.DelayReasonID(),
		Comments: cmd.Comments(),
		Actor:    cmd.Actor(),
		At:       now,
	}
	if submission.ReasonID != nil {
		if submission.Reason, err = h.loadReason(ctx, uow.CatalogRepository(), submission); err != nil {
			return CompleteOrderResult{}, err
		}
	}

	if err = h.tracker.Apply(ctx, o, h.tracker.Evaluate(o, now), submission); err != nil {
		return CompleteOrderResult{}, err
	}
	if err = o.Transition(order.Completed, cmd.Actor(), now); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return CompleteOrderResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	if _, _, _, pending := o.StockAdjustment(); pending {
		applyStockBestEffort(ctx, h.adjuster, h.logger, o.ID())
	}

	return completeResult(o), nil
}

// loadReason returns nil for an unknown reason; the tracker decides whether that matters.
func (h *CompleteOrderCommandHandler) loadReason(
	ctx context.Context, repo ports.CatalogRepository, s services.DelaySubmission,
) (*catalog.DelayReason, error) {
	reason, err := repo.GetDelayReason(ctx, *s.ReasonID)
	if isNotFound(err) {
		return nil, nil
	}
	return reason, err
}

func completeResult(o *order.Order) CompleteOrderResult {
	return CompleteOrderResult{
		OrderNumber:       o.Number().String(),
		ActualDuration:    o.ActualDuration(),
		ExceededThreshold: o.Delay().ExceededThreshold,
	}
}
