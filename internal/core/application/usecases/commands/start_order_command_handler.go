package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/core/ports"
)

// intakeLockTTL bounds how long a crashed request can block a plate.
const intakeLockTTL = 15 * time.Second

// StartOutcome tells the caller which branch of the intake flow was taken.
type StartOutcome string

const (
	// OrderCreated means a new order was opened.
	OrderCreated StartOutcome = "order_created"
	// ExistingOrderReturned means the vehicle already had an open order; nothing was written.
	ExistingOrderReturned StartOutcome = "existing_order"
	// OrderReused means an open order of the chosen customer's vehicle was picked up again.
	OrderReused StartOutcome = "order_reused"
	// CustomerFound means the plate is known but has no open order; nothing was written.
	CustomerFound StartOutcome = "customer_found"
)

// StartOrderResult describes what StartOrder did.
type StartOrderResult struct {
	Outcome     StartOutcome
	OrderID     kernel.UUID
	OrderNumber string
	Status      order.Status
	CustomerID  kernel.UUID
	VehicleID   *kernel.UUID
}

// ExistingOrder reports whether the result points at an order that existed before the call.
func (r StartOrderResult) ExistingOrder() bool {
	return r.Outcome == ExistingOrderReturned || r.Outcome == OrderReused
}

// HasOrder reports whether the result carries an order at all.
func (r StartOrderResult) HasOrder() bool {
	return r.Outcome != CustomerFound
}

// StartOrderCommandHandler is the intake and deduplication flow: it never
// creates a second open order for a vehicle unless forced to.
type StartOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
	locker     ports.VehicleLocker
	clock      ports.Clock
	logger     *slog.Logger
}

func NewStartOrderCommandHandler(
	uowFactory IntakeUoWFactory,
	locker ports.VehicleLocker,
	clock ports.Clock,
	logger *slog.Logger,
) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clock,
		logger:     logger.With("component", "StartOrderCommandHandler"),
	}
}

// Handle resolves the customer and vehicle, then returns, reuses or creates
// an order. Customer, vehicle and order writes commit together.
func (h *StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) (StartOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return StartOrderResult{}, err
	}

	if plate := cmd.Plate(); plate != nil {
		unlock, err := h.locker.Lock(ctx, intakeLockKey(cmd), intakeLockTTL)
		if err != nil {
			return StartOrderResult{}, err
		}
		defer func() {
			if unlockErr := unlock(context.WithoutCancel(ctx)); unlockErr != nil {
				h.logger.WarnContext(ctx, "failed to release intake lock", "plate", plate.String(), "error", unlockErr)
			}
		}()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StartOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	scope := cmd.Scope()
	customers := uow.CustomerRepository()
	vehicles := uow.VehicleRepository()

	var (
		cust          *customer.Customer
		veh           *vehicle.Vehicle
		isNewCustomer bool
		err           error
	)

	switch {
	case cmd.ExistingCustomerID() != nil:
		cust, err = customers.Get(ctx, scope, *cmd.ExistingCustomerID())
		if err != nil {
			return StartOrderResult{}, err
		}
		if cmd.Plate() != nil {
			if veh, err = upsertVehicle(ctx, vehicles, cust.BranchID(), cust.ID(), *cmd.Plate()); err != nil {
				return StartOrderResult{}, err
			}
		}

	default:
		veh, err = vehicles.FindByPlate(ctx, scope, *cmd.Plate())
		switch {
		case err == nil:
			if !cmd.ForceNewOrder() {
				return h.lookupResult(ctx, uow, veh)
			}
			if cust, err = customers.Get(ctx, scope, veh.CustomerID()); err != nil {
				return StartOrderResult{}, err
			}
		case isNotFound(err):
			branchID, branchErr := recordBranch(scope, nil)
			if branchErr != nil {
				return StartOrderResult{}, branchErr
			}
			if cust, err = customer.NewPlateCustomer(kernel.NewUUID(), branchID, *cmd.Plate()); err != nil {
				return StartOrderResult{}, err
			}
			isNewCustomer = true
			if veh, err = vehicle.NewVehicle(kernel.NewUUID(), cust.ID(), branchID, *cmd.Plate()); err != nil {
				return StartOrderResult{}, err
			}
		default:
			return StartOrderResult{}, err
		}
	}

	canReuse := !cmd.ForceNewOrder() && veh != nil && !isNewCustomer
	result, err := h.reuseOrCreate(ctx, uow, cmd, cust, veh, canReuse, now)
	if err != nil {
		return StartOrderResult{}, err
	}

	cust.RecordVisit(now)
	if isNewCustomer {
		if err = customers.Add(ctx, cust); err != nil {
			return StartOrderResult{}, err
		}
		if err = vehicles.Add(ctx, veh); err != nil {
			return StartOrderResult{}, err
		}
	} else if err = customers.Update(ctx, cust); err != nil {
		return StartOrderResult{}, err
	}

	if result.order != nil {
		if err = uow.OrderRepository().Add(ctx, result.order); err != nil {
			return StartOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return StartOrderResult{}, err
	}

	h.logger.InfoContext(ctx, "order intake",
		"outcome", string(result.Outcome), "order_number", result.OrderNumber, "actor", cmd.Actor())
	return result.StartOrderResult, nil
}

// lookupResult answers a plate that is already known without writing anything.
func (h *StartOrderCommandHandler) lookupResult(
	ctx context.Context, uow IntakeUoW, veh *vehicle.Vehicle,
) (StartOrderResult, error) {
	vehicleID := veh.ID()
	open, err := uow.OrderRepository().FindLatestByVehicle(ctx, vehicleID, order.Created, order.InProgress)
	switch {
	case err == nil:
		return StartOrderResult{
			Outcome:     ExistingOrderReturned,
			OrderID:     open.ID(),
			OrderNumber: open.Number().String(),
			Status:      open.Status(),
			CustomerID:  open.CustomerID(),
			VehicleID:   &vehicleID,
		}, nil
	case isNotFound(err):
		return StartOrderResult{
			Outcome:    CustomerFound,
			CustomerID: veh.CustomerID(),
			VehicleID:  &vehicleID,
		}, nil
	default:
		return StartOrderResult{}, err
	}
}

// pendingResult carries the new order until it is persisted.
type pendingResult struct {
	StartOrderResult
	order *order.Order
}

func (h *StartOrderCommandHandler) reuseOrCreate(
	ctx context.Context,
	uow IntakeUoW,
	cmd StartOrderCommand,
	cust *customer.Customer,
	veh *vehicle.Vehicle,
	canReuse bool,
	now time.Time,
) (pendingResult, error) {
	var vehicleID *kernel.UUID
	if veh != nil {
		id := veh.ID()
		vehicleID = &id
	}

	if canReuse {
		reused, err := h.findReusable(ctx, uow.OrderRepository(), *vehicleID)
		if err != nil {
			return pendingResult{}, err
		}
		if reused != nil {
			return pendingResult{StartOrderResult: StartOrderResult{
				Outcome:     OrderReused,
				OrderID:     reused.ID(),
				OrderNumber: reused.Number().String(),
				Status:      reused.Status(),
				CustomerID:  cust.ID(),
				VehicleID:   vehicleID,
			}}, nil
		}
	}

	branchID := cust.BranchID()
	o, err := order.NewOrder(kernel.NewUUID(), branchID, cust.ID(), vehicleID, cmd.OrderType(), order.Medium, now)
	if err != nil {
		return pendingResult{}, err
	}

	if err = h.applyServices(ctx, uow.CatalogRepository(), cmd, o, veh); err != nil {
		return pendingResult{}, err
	}

	return pendingResult{
		StartOrderResult: StartOrderResult{
			Outcome:     OrderCreated,
			OrderID:     o.ID(),
			OrderNumber: o.Number().String(),
			Status:      o.Status(),
			CustomerID:  cust.ID(),
			VehicleID:   vehicleID,
		},
		order: o,
	}, nil
}

// findReusable prefers the newest created order, then the most recently
// started running one.
func (h *StartOrderCommandHandler) findReusable(
	ctx context.Context, repo ports.OrderRepository, vehicleID kernel.UUID,
) (*order.Order, error) {
	created, err := repo.FindLatestByVehicle(ctx, vehicleID, order.Created)
	if err == nil {
		return created, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	running, err := repo.FindLatestStartedByVehicle(ctx, vehicleID, order.InProgress, order.Overdue)
	if err == nil {
		return running, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	return nil, nil
}

func (h *StartOrderCommandHandler) applyServices(
	ctx context.Context,
	repo ports.CatalogRepository,
	cmd StartOrderCommand,
	o *order.Order,
	veh *vehicle.Vehicle,
) error {
	var est serviceEstimate
	if cmd.OrderType() == order.Service {
		var err error
		if est, err = estimateServices(ctx, repo, cmd.ServiceSelection()); err != nil {
			return err
		}
	}

	if err := addLines(o, est.lines); err != nil {
		return err
	}

	minutes := est.minutes
	if minutes == 0 && cmd.EstimatedDuration() != nil {
		minutes = *cmd.EstimatedDuration()
	}
	if err := o.SetEstimatedDuration(minutes); err != nil {
		return err
	}

	return o.SetDescription(startDescription(veh, est.names, o.Type()))
}

func startDescription(veh *vehicle.Vehicle, services []string, t order.Type) string {
	if veh == nil {
		return defaultDescription(t)
	}
	if len(services) == 0 {
		return fmt.Sprintf("Order started for %s", veh.PlateNumber())
	}
	return fmt.Sprintf("Order started for %s: %s", veh.PlateNumber(), strings.Join(services, ", "))
}

func intakeLockKey(cmd StartOrderCommand) string {
	home := "any"
	if id, ok := cmd.Scope().Home(); ok {
		home = id.String()
	}
	return "intake:" + home + ":" + cmd.Plate().String()
}
