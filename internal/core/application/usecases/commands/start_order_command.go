package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrStartOrderCommandIsNotConstructed = errors.New(
	"StartOrderCommand must be created via NewStartOrderCommand constructor",
)

// StartOrderInput is the raw request to start an order at the front desk.
type StartOrderInput struct {
	Plate               string
	OrderType           string
	UseExistingCustomer bool
	ExistingCustomerID  *kernel.UUID
	ServiceSelection    []string
	EstimatedDuration   *int
	ForceNewOrder       bool
}

// StartOrderCommand opens (or finds) the order for a vehicle arriving at the shop.
//
// Example:
//
//	cmd, err := NewStartOrderCommand(scope, "frontdesk", StartOrderInput{
//	    Plate:            "ABC123",
//	    OrderType:        "service",
//	    ServiceSelection: []string{"Oil Change", "Tire Rotation"},
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	scope              branch.Scope
	actor              string
	plate              *kernel.PlateNumber
	orderType          order.Type
	existingCustomerID *kernel.UUID
	serviceSelection   []string
	estimatedDuration  *int
	forceNewOrder      bool

	guard guard.ConstructorGuard
}

// NewStartOrderCommand validates the input. A plate is required unless an
// existing customer is chosen.
func NewStartOrderCommand(scope branch.Scope, actor string, in StartOrderInput) (StartOrderCommand, error) {
	cmd := StartOrderCommand{
		scope:         scope,
		actor:         strings.TrimSpace(actor),
		forceNewOrder: in.ForceNewOrder,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(in.UseExistingCustomer, in.ExistingCustomerID),
		cmd.setPlate(in.Plate),
		cmd.setOrderType(in.OrderType),
		cmd.setServiceSelection(in.ServiceSelection),
		cmd.setEstimatedDuration(in.EstimatedDuration),
	); err != nil {
		return StartOrderCommand{}, err
	}

	return cmd, nil
}

func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

func (c StartOrderCommand) Scope() branch.Scope { return c.scope }

func (c StartOrderCommand) Actor() string { return c.actor }

// Plate is nil when an existing customer was chosen without a vehicle.
func (c StartOrderCommand) Plate() *kernel.PlateNumber { return c.plate }

func (c StartOrderCommand) OrderType() order.Type { return c.orderType }

// ExistingCustomerID is set only when the caller asked to use an existing customer.
func (c StartOrderCommand) ExistingCustomerID() *kernel.UUID { return c.existingCustomerID }

func (c StartOrderCommand) ServiceSelection() []string { return c.serviceSelection }

func (c StartOrderCommand) EstimatedDuration() *int { return c.estimatedDuration }

func (c StartOrderCommand) ForceNewOrder() bool { return c.forceNewOrder }

func (c *StartOrderCommand) setCustomer(useExisting bool, id *kernel.UUID) error {
	if !useExisting {
		return nil
	}
	if id == nil {
		return errs.NewValueIsRequiredError("existing_customer_id")
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("existing_customer_id", err)
	}
	customerID := *id
	c.existingCustomerID = &customerID
	return nil
}

func (c *StartOrderCommand) setPlate(raw string) error {
	if strings.TrimSpace(raw) == "" && c.existingCustomerID != nil {
		return nil
	}
	plate, err := kernel.NewPlateNumber(raw)
	if err != nil {
		return err
	}
	c.plate = &plate
	return nil
}

func (c *StartOrderCommand) setOrderType(raw string) error {
	if strings.TrimSpace(raw) == "" {
		c.orderType = order.Service
		return nil
	}
	t, err := order.ParseType(raw)
	if err != nil {
		return err
	}
	c.orderType = t
	return nil
}

func (c *StartOrderCommand) setServiceSelection(names []string) error {
	c.serviceSelection = cleanNames(names)
	return nil
}

func (c *StartOrderCommand) setEstimatedDuration(minutes *int) error {
	if minutes == nil {
		return nil
	}
	if *minutes < 0 {
		return errs.NewValueIsOutOfRangeError("estimated_duration", *minutes, 0, nil)
	}
	v := *minutes
	c.estimatedDuration = &v
	return nil
}

// cleanNames trims names and drops blanks and case-insensitive duplicates,
// keeping the first spelling.
func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
