package commands

import (
	"context"
	"errors"
	"log/slog"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// StockAdjuster decrements inventory for sales orders.
//
// It runs in its own unit of work after the order has committed, so a missing
// inventory record or insufficient stock never undoes the order. Failures are
// returned as *errs.AdjustmentError for the caller to log.
type StockAdjuster struct {
	uowFactory InventoryUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewStockAdjuster(uowFactory InventoryUoWFactory, clock ports.Clock, logger *slog.Logger) StockAdjuster {
	return StockAdjuster{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "StockAdjuster"),
	}
}

// Adjust changes the stock of the item identified by name and brand by delta
// and returns the remaining quantity.
func (s StockAdjuster) Adjust(ctx context.Context, itemName, brand string, delta int) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, errs.NewAdjustmentError(itemName, brand, delta, err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	remaining, err := s.adjust(ctx, uow, itemName, brand, delta)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errs.NewAdjustmentError(itemName, brand, delta, err)
	}
	return remaining, nil
}

// ApplyForOrder applies the order's pending decrement and flags the order so
// it is never applied twice. Orders with nothing to adjust are left alone.
func (s StockAdjuster) ApplyForOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// system access: the order was already authorised by the calling command
	o, err := uow.OrderRepository().Get(ctx, branch.UnrestrictedScope(nil), orderID)
	if err != nil {
		return 0, err
	}

	name, brand, delta, ok := o.StockAdjustment()
	if !ok {
		return 0, nil
	}

	remaining, err := s.adjust(ctx, uow, name, brand, delta)
	if err != nil {
		return 0, err
	}

	o.MarkStockAdjusted(s.clock.Now())
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, errs.NewAdjustmentError(name, brand, delta, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errs.NewAdjustmentError(name, brand, delta, err)
	}

	s.logger.InfoContext(ctx, "stock adjusted",
		"order_number", o.Number().String(), "item", name, "brand", brand, "delta", delta, "remaining", remaining)
	return remaining, nil
}

func (s StockAdjuster) adjust(ctx context.Context, uow InventoryUoW, itemName, brand string, delta int) (int, error) {
	if itemName == "" || brand == "" || delta == 0 {
		return 0, errs.NewAdjustmentError(itemName, brand, delta, errors.New("insufficient context"))
	}

	repo := uow.InventoryRepository()
	item, err := repo.FindByNameAndBrand(ctx, itemName, brand)
	if err != nil {
		return 0, errs.NewAdjustmentError(itemName, brand, delta, err)
	}

	remaining, err := item.Adjust(delta)
	if err != nil {
		return 0, errs.NewAdjustmentError(itemName, brand, delta, err)
	}

	if err = repo.Update(ctx, item); err != nil {
		return 0, errs.NewAdjustmentError(itemName, brand, delta, err)
	}
	return remaining, nil
}

// applyStockBestEffort runs the adjustment for a committed order and only logs
// failures.
func applyStockBestEffort(ctx context.Context, adjuster OrderStockAdjuster, logger *slog.Logger, orderID kernel.UUID) {
	if adjuster == nil {
		return
	}
	if _, err := adjuster.ApplyForOrder(ctx, orderID); err != nil {
		logger.WarnContext(ctx, "stock adjustment skipped", "order_id", orderID.String(), "error", err)
	}
}
