package commands

import (
	"context"
	"log/slog"
	"time"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
)

// systemActor is recorded on transitions made by the background sweep.
const systemActor = "system"

// ProgressStaleOrdersResult counts what one sweep changed.
type ProgressStaleOrdersResult struct {
	Started       int
	MarkedOverdue int
}

// ProgressStaleOrdersCommandHandler moves created orders to in progress once
// the start grace period has passed, and in-progress orders to overdue once
// the overdue threshold has passed.
type ProgressStaleOrdersCommandHandler struct {
	uowFactory  OrderUoWFactory
	clock       ports.Clock
	startAfter  time.Duration
	overdueFrom time.Duration
	logger      *slog.Logger
}

// NewProgressStaleOrdersCommandHandler falls back to the order package
// defaults for zero durations.
func NewProgressStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	startAfter time.Duration,
	logger *slog.Logger,
) ProgressStaleOrdersCommandHandler {
	if startAfter <= 0 {
		startAfter = order.StartGracePeriod
	}
	return ProgressStaleOrdersCommandHandler{
		uowFactory:  uowFactory,
		clock:       clock,
		startAfter:  startAfter,
		overdueFrom: order.OverdueThreshold,
		logger:      logger.With("component", "ProgressStaleOrdersCommandHandler"),
	}
}

func (h *ProgressStaleOrdersCommandHandler) Handle(ctx context.Context) (ProgressStaleOrdersResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProgressStaleOrdersResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	repo := uow.OrderRepository()

	created, err := repo.ListCreatedBefore(ctx, now.Add(-h.startAfter))
	if err != nil {
		return ProgressStaleOrdersResult{}, err
	}
	running, err := repo.ListInProgressStartedBefore(ctx, now.Add(-h.overdueFrom))
	if err != nil {
		return ProgressStaleOrdersResult{}, err
	}

	var result ProgressStaleOrdersResult
	for _, o := range created {
		if err = h.advance(ctx, repo, o, order.InProgress, now); err != nil {
			return ProgressStaleOrdersResult{}, err
		}
		result.Started++
	}
	for _, o := range running {
		if err = h.advance(ctx, repo, o, order.Overdue, now); err != nil {
			return ProgressStaleOrdersResult{}, err
		}
		result.MarkedOverdue++
	}

	if err = uow.Commit(ctx); err != nil {
		return ProgressStaleOrdersResult{}, err
	}

	if result.Started > 0 || result.MarkedOverdue > 0 {
		h.logger.InfoContext(ctx, "stale orders progressed",
			"started", result.Started, "overdue", result.MarkedOverdue)
	}
	return result, nil
}

func (h *ProgressStaleOrdersCommandHandler) advance(
	ctx context.Context, repo ports.OrderRepository, o *order.Order, target order.Status, now time.Time,
) error {
	if err := o.Transition(target, systemActor, now); err != nil {
		return err
	}
	return repo.Update(ctx, o)
}
