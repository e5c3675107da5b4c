package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// UpdateOrderFromExtractionResult lists the human-readable changes applied.
type UpdateOrderFromExtractionResult struct {
	OrderID        string
	OrderNumber    string
	UpdatesApplied []string
}

// UpdateOrderFromExtractionCommandHandler applies extracted paperwork to an
// order, its customer and its vehicle in one transaction.
type UpdateOrderFromExtractionCommandHandler struct {
	uowFactory IntakeUoWFactory
	resolver   services.ItemResolver
	logger     *slog.Logger
}

func NewUpdateOrderFromExtractionCommandHandler(
	uowFactory IntakeUoWFactory,
	resolver services.ItemResolver,
	logger *slog.Logger,
) UpdateOrderFromExtractionCommandHandler {
	return UpdateOrderFromExtractionCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     logger.With("component", "UpdateOrderFromExtractionCommandHandler"),
	}
}

func (h *UpdateOrderFromExtractionCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderFromExtractionCommand,
) (UpdateOrderFromExtractionResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderFromExtractionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderFromExtractionResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Scope(), cmd.OrderID())
	if err != nil {
		return UpdateOrderFromExtractionResult{}, err
	}
	if o.Status().IsTerminal() {
		return UpdateOrderFromExtractionResult{}, fmt.Errorf("%w: %s", order.ErrOrderIsClosed, o.Status())
	}

	updates := []string{fmt.Sprintf("Order #%s updated successfully", o.Number())}

	if !cmd.Customer().IsZero() {
		name, custErr := h.updateCustomer(ctx, uow.CustomerRepository(), cmd, o)
		if custErr != nil {
			return UpdateOrderFromExtractionResult{}, custErr
		}
		updates = append(updates, "Customer: "+name)
	}

	if plate := cmd.Plate(); plate != nil {
		veh, vehErr := upsertVehicle(ctx, uow.VehicleRepository(), o.BranchID(), o.CustomerID(), *plate)
		if vehErr != nil {
			return UpdateOrderFromExtractionResult{}, vehErr
		}
		extracted := cmd.Vehicle()
		veh.UpdateDetails(extracted.Make, extracted.Model, extracted.VehicleType)
		if err = uow.VehicleRepository().Update(ctx, veh); err != nil {
			return UpdateOrderFromExtractionResult{}, err
		}
		if err = o.AssignVehicle(veh.ID()); err != nil {
			return UpdateOrderFromExtractionResult{}, err
		}
		updates = append(updates, "Vehicle: "+plate.String())
	}

	orderUpdates, err := h.updateOrder(ctx, uow, cmd, o)
	if err != nil {
		return UpdateOrderFromExtractionResult{}, err
	}
	updates = append(updates, orderUpdates...)

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return UpdateOrderFromExtractionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderFromExtractionResult{}, err
	}

	h.logger.InfoContext(ctx, "order updated from extraction",
		"order_number", o.Number().String(), "changes", len(updates)-1, "actor", cmd.Actor())

	return UpdateOrderFromExtractionResult{
		OrderID:        o.ID().String(),
		OrderNumber:    o.Number().String(),
		UpdatesApplied: updates,
	}, nil
}

func (h *UpdateOrderFromExtractionCommandHandler) updateCustomer(
	ctx context.Context,
	repo ports.CustomerRepository,
	cmd UpdateOrderFromExtractionCommand,
	o *order.Order,
) (string, error) {
	cust, err := repo.Get(ctx, cmd.Scope(), o.CustomerID())
	if err != nil {
		return "", err
	}

	in := cmd.Customer()
	current := cust.Classification()
	classification, err := parseClassification(
		firstNonBlank(in.CustomerType, string(current.Type())),
		firstNonBlank(in.PersonalSubtype, string(current.PersonalSubtype())),
		firstNonBlank(in.OrganizationName, current.OrganizationName()),
		firstNonBlank(in.TaxNumber, current.TaxNumber()),
	)
	if err != nil {
		return "", err
	}

	if err = cust.UpdateProfile(
		firstNonBlank(in.FullName, cust.FullName()),
		firstNonBlank(in.Phone, cust.Phone()),
		classification,
	); err != nil {
		return "", err
	}
	cust.SetContact(firstNonBlank(in.Email, cust.Email()), firstNonBlank(in.Address, cust.Address()))

	if err = repo.Update(ctx, cust); err != nil {
		return "", err
	}
	return cust.FullName(), nil
}

func (h *UpdateOrderFromExtractionCommandHandler) updateOrder(
	ctx context.Context, uow IntakeUoW, cmd UpdateOrderFromExtractionCommand, o *order.Order,
) ([]string, error) {
	var updates []string

	if t := cmd.OrderType(); t != nil {
		if err := o.SetType(*t); err != nil {
			return nil, err
		}
	}
	if p, ok := cmd.Priority(); ok {
		if err := o.SetPriority(p); err != nil {
			return nil, err
		}
	}
	if d := cmd.Description(); d != "" {
		if err := o.SetDescription(d); err != nil {
			return nil, err
		}
	}

	durationSet := false
	if len(cmd.Services()) > 0 {
		est, err := estimateServices(ctx, uow.CatalogRepository(), cmd.Services())
		if err != nil {
			return nil, err
		}
		if err = o.ReplaceLineItems(order.ServiceLine, serviceLinesOnly(est.lines)); err != nil {
			return nil, err
		}
		if est.minutes > 0 {
			if err = o.SetEstimatedDuration(est.minutes); err != nil {
				return nil, err
			}
			durationSet = true
		}
		updates = append(updates, "Services: "+strings.Join(cmd.Services(), ", "))
	}
	if !durationSet && cmd.EstimatedDuration() != nil {
		if err := o.SetEstimatedDuration(*cmd.EstimatedDuration()); err != nil {
			return nil, err
		}
		durationSet = true
	}

	source := itemCatalog{catalog: uow.CatalogRepository(), inventory: uow.InventoryRepository()}
	if resolved, ok := h.resolver.Resolve(ctx, source, cmd.Item()); ok {
		if err := applyResolvedItem(o, resolved); err != nil {
			return nil, err
		}
		item := o.Item()
		updates = append(updates, fmt.Sprintf("Item: %s (%s) × %d", item.Name, item.Brand, item.Quantity))
	}

	if durationSet && o.EstimatedDuration() != nil {
		updates = append(updates, fmt.Sprintf("Est. Duration: %d minutes", *o.EstimatedDuration()))
	}

	if c := cmd.Component(); c != nil {
		t, err := order.ParseType(c.Type)
		if err != nil {
			return nil, err
		}
		if err = o.AddComponent(t, c.Reason); err != nil {
			return nil, err
		}
		updates = append(updates, fmt.Sprintf("Component: %s (%s)", t, strings.TrimSpace(c.Reason)))
	}

	return updates, nil
}

func serviceLinesOnly(lines []order.LineItem) []order.LineItem {
	out := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		if line.Kind() == order.ServiceLine {
			out = append(out, line)
		}
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
