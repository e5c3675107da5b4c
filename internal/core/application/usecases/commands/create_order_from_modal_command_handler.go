package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// defaultServiceMinutes is assumed for service orders with no known services and no estimate.
const defaultServiceMinutes = 50

// CreateOrderFromModalResult identifies the created order.
type CreateOrderFromModalResult struct {
	OrderID     kernel.UUID
	OrderNumber string
	OrderType   order.Type
}

// CreateOrderFromModalCommandHandler creates a fully described order. It does
// not deduplicate: the form is used when staff deliberately open an order.
type CreateOrderFromModalCommandHandler struct {
	uowFactory IntakeUoWFactory
	resolver   services.ItemResolver
	adjuster   OrderStockAdjuster
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCreateOrderFromModalCommandHandler(
	uowFactory IntakeUoWFactory,
	resolver services.ItemResolver,
	adjuster OrderStockAdjuster,
	clock ports.Clock,
	logger *slog.Logger,
) CreateOrderFromModalCommandHandler {
	return CreateOrderFromModalCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		adjuster:   adjuster,
		clock:      clock,
		logger:     logger.With("component", "CreateOrderFromModalCommandHandler"),
	}
}

func (h *CreateOrderFromModalCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderFromModalCommand,
) (CreateOrderFromModalResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderFromModalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderFromModalResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()

	cust, err := h.resolveCustomer(ctx, uow.CustomerRepository(), cmd, now)
	if err != nil {
		return CreateOrderFromModalResult{}, err
	}

	var vehicleID *kernel.UUID
	if plate := cmd.Plate(); plate != nil {
		veh, vehErr := upsertVehicle(ctx, uow.VehicleRepository(), cust.BranchID(), cust.ID(), *plate)
		if vehErr != nil {
			return CreateOrderFromModalResult{}, vehErr
		}
		id := veh.ID()
		vehicleID = &id
	}

	o, err := order.NewOrder(kernel.NewUUID(), cust.BranchID(), cust.ID(), vehicleID, cmd.OrderType(), cmd.Priority(), now)
	if err != nil {
		return CreateOrderFromModalResult{}, err
	}

	if err = h.applyTypeFields(ctx, uow, cmd, o); err != nil {
		return CreateOrderFromModalResult{}, err
	}

	description := cmd.Description()
	if description == "" {
		description = defaultDescription(o.Type())
	}
	if err = o.SetDescription(description); err != nil {
		return CreateOrderFromModalResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderFromModalResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderFromModalResult{}, err
	}

	if o.Type() == order.Sales {
		applyStockBestEffort(ctx, h.adjuster, h.logger, o.ID())
	}

	return CreateOrderFromModalResult{
		OrderID:     o.ID(),
		OrderNumber: o.Number().String(),
		OrderType:   o.Type(),
	}, nil
}

// resolveCustomer loads the chosen customer or gets-or-creates one by name and
// phone inside the record branch, and counts the visit.
func (h *CreateOrderFromModalCommandHandler) resolveCustomer(
	ctx context.Context,
	repo ports.CustomerRepository,
	cmd CreateOrderFromModalCommand,
	now time.Time,
) (*customer.Customer, error) {
	if id := cmd.CustomerID(); id != nil {
		cust, err := repo.Get(ctx, cmd.Scope(), *id)
		if err != nil {
			return nil, err
		}
		cust.RecordVisit(now)
		return cust, repo.Update(ctx, cust)
	}

	branchID, err := recordBranch(cmd.Scope(), nil)
	if err != nil {
		return nil, err
	}

	in := cmd.NewCustomer()
	cust, err := repo.FindByNameAndPhone(ctx, branchID, in.FullName, in.Phone)
	switch {
	case err == nil:
		cust.RecordVisit(now)
		return cust, repo.Update(ctx, cust)
	case isNotFound(err):
		cust, err = customer.NewCustomer(kernel.NewUUID(), branchID, in.FullName, in.Phone, cmd.Classification())
		if err != nil {
			return nil, err
		}
		cust.SetContact(in.Email, in.Address)
		cust.RecordVisit(now)
		return cust, repo.Add(ctx, cust)
	default:
		return nil, err
	}
}

func (h *CreateOrderFromModalCommandHandler) applyTypeFields(
	ctx context.Context, uow IntakeUoW, cmd CreateOrderFromModalCommand, o *order.Order,
) error {
	minutes := 0
	if cmd.EstimatedDuration() != nil {
		minutes = *cmd.EstimatedDuration()
	}

	//nolint:exhaustive // unspecified orders carry only the estimate
	switch o.Type() {
	case order.Service, order.Mixed:
		est, err := estimateServices(ctx, uow.CatalogRepository(), cmd.Services())
		if err != nil {
			return err
		}
		if err = addLines(o, est.lines); err != nil {
			return err
		}
		if est.minutes > 0 {
			minutes = est.minutes
		}
		if minutes == 0 && o.Type() == order.Service {
			minutes = defaultServiceMinutes
		}
		if o.Type() == order.Mixed {
			if err = h.applyItem(ctx, uow, cmd.Item(), o); err != nil {
				return err
			}
		}

	case order.Sales:
		if err := h.applyItem(ctx, uow, cmd.Item(), o); err != nil {
			return err
		}
		if len(cmd.TireServices()) == 0 {
			break
		}
		addons, err := uow.CatalogRepository().ServiceAddonsByNames(ctx, cmd.TireServices())
		if err != nil {
			return err
		}
		for _, addon := range addons {
			if !addon.IsActive() {
				continue
			}
			line, lineErr := order.NewLineItem(order.AddonLine, addon.Name(), fmt.Sprintf("%d min", addon.EstimatedMinutes()))
			if lineErr != nil {
				return lineErr
			}
			if err = o.AddLineItem(line); err != nil {
				return err
			}
		}
		if tireMinutes := catalog.TotalMinutes(addons); tireMinutes > 0 {
			minutes = tireMinutes
		}

	case order.Labour:
		if err := h.applyItem(ctx, uow, cmd.Item(), o); err != nil {
			return err
		}

	case order.Inquiry:
		if err := o.SetInquiry(cmd.Inquiry()); err != nil {
			return err
		}
	}

	return o.SetEstimatedDuration(minutes)
}

// applyItem resolves the item candidates. An unresolved item leaves the order without one.
func (h *CreateOrderFromModalCommandHandler) applyItem(
	ctx context.Context, uow IntakeUoW, candidates services.ItemCandidates, o *order.Order,
) error {
	source := itemCatalog{catalog: uow.CatalogRepository(), inventory: uow.InventoryRepository()}
	resolved, ok := h.resolver.Resolve(ctx, source, candidates)
	if !ok {
		return nil
	}
	return applyResolvedItem(o, resolved)
}

func applyResolvedItem(o *order.Order, resolved services.ResolvedItem) error {
	if err := o.SetItem(resolved.Item); err != nil {
		return err
	}
	if resolved.Source != services.SourceLabourCode {
		return nil
	}
	line, err := order.NewLineItem(order.LabourCodeLine, resolved.LabourCode, resolved.Item.Name)
	if err != nil {
		return err
	}
	return o.AddLineItem(line)
}

func addLines(o *order.Order, lines []order.LineItem) error {
	for _, line := range lines {
		if err := o.AddLineItem(line); err != nil {
			return err
		}
	}
	return nil
}
