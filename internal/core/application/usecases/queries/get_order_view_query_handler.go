package queries

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// GetOrderViewQueryHandler loads an order with its customer and vehicle and
// builds the OrderView. It reads outside a transaction.
type GetOrderViewQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewGetOrderViewQueryHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) GetOrderViewQueryHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return GetOrderViewQueryHandler{uowFactory: uowFactory, clock: clock}
}

func (h GetOrderViewQueryHandler) Handle(ctx context.Context, query GetOrderViewQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.Scope(), query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	c, err := uow.CustomerRepository().Get(ctx, query.Scope(), o.CustomerID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return OrderView{}, err
	}

	var v *vehicle.Vehicle
	if vehicleID := o.VehicleID(); vehicleID != nil {
		v, err = uow.VehicleRepository().Get(ctx, query.Scope(), *vehicleID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return OrderView{}, err
		}
	}

	return BuildOrderView(o, c, v, h.clock.Now()), nil
}

