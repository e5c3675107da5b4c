package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
	"tracker/internal/pkg/validation"
)

var ErrUpdateOrderFromExtractionCommandIsNotConstructed = errors.New(
	"UpdateOrderFromExtractionCommand must be created via NewUpdateOrderFromExtractionCommand constructor",
)

// ExtractedCustomer are the customer fields read from paperwork. Blank fields
// keep the stored value.
type ExtractedCustomer struct {
	FullName         string `json:"full_name" validate:"max=200"`
	Phone            string `json:"phone" validate:"max=32"`
	Email            string `json:"email" validate:"omitempty,email"`
	Address          string `json:"address" validate:"max=500"`
	CustomerType     string `json:"customer_type" validate:"omitempty,oneof=personal company government ngo"`
	PersonalSubtype  string `json:"personal_subtype" validate:"omitempty,oneof=owner driver"`
	OrganizationName string `json:"organization_name" validate:"max=200"`
	TaxNumber        string `json:"tax_number" validate:"max=50"`
}

// IsZero reports whether nothing was extracted.
func (c ExtractedCustomer) IsZero() bool {
	return c == ExtractedCustomer{}
}

// ExtractedOrder are the order fields read from paperwork.
type ExtractedOrder struct {
	OrderType         string       `json:"order_type" validate:"omitempty,oneof=service sales inquiry labour unspecified mixed"`
	Priority          string       `json:"priority"`
	Description       string       `json:"description"`
	EstimatedDuration *int         `json:"estimated_duration" validate:"omitempty,gte=0"`
	Services          []string     `json:"services"`
	LabourCodeID      *kernel.UUID `json:"labour_code_id"`
	ItemName          string       `json:"item_name" validate:"max=200"`
	Brand             string       `json:"brand" validate:"max=100"`
	Quantity          int          `json:"quantity" validate:"gte=0"`
	TireType          string       `json:"tire_type" validate:"max=50"`
	InventoryItemID   *kernel.UUID `json:"inventory_item_id"`
}

// ExtractedVehicle are the vehicle fields read from paperwork.
type ExtractedVehicle struct {
	Plate       string `json:"plate_number" validate:"max=20"`
	Make        string `json:"make" validate:"max=100"`
	Model       string `json:"model" validate:"max=100"`
	VehicleType string `json:"vehicle_type" validate:"max=50"`
}

// ComponentInput adds a service or sales component to an existing order.
type ComponentInput struct {
	Type   string `json:"type" validate:"required,oneof=service sales"`
	Reason string `json:"reason" validate:"required"`
}

type UpdateOrderFromExtractionInput struct {
	OrderID      kernel.UUID       `json:"-"`
	Customer     ExtractedCustomer `json:"customer"`
	Order        ExtractedOrder    `json:"order"`
	Vehicle      *ExtractedVehicle `json:"vehicle"`
	AddComponent *ComponentInput   `json:"add_component"`
}

// UpdateOrderFromExtractionCommand enriches an open order with data read from
// a job card or invoice.
type UpdateOrderFromExtractionCommand struct { //nolint:recvcheck //using for validation
	scope       branch.Scope
	actor       string
	orderID     kernel.UUID
	customer    ExtractedCustomer
	orderType   *order.Type
	priority    string
	hasPriority bool
	description string
	estimate    *int
	services    []string
	item        services.ItemCandidates
	vehicle     *ExtractedVehicle
	plate       *kernel.PlateNumber
	component   *ComponentInput

	guard guard.ConstructorGuard
}

func NewUpdateOrderFromExtractionCommand(
	scope branch.Scope, actor string, in UpdateOrderFromExtractionInput,
) (UpdateOrderFromExtractionCommand, error) {
	if err := validation.Struct(in); err != nil {
		return UpdateOrderFromExtractionCommand{}, err
	}

	cmd := UpdateOrderFromExtractionCommand{
		scope:       scope,
		actor:       strings.TrimSpace(actor),
		customer:    in.Customer,
		priority:    strings.TrimSpace(in.Order.Priority),
		hasPriority: strings.TrimSpace(in.Order.Priority) != "",
		description: strings.TrimSpace(in.Order.Description),
		estimate:    in.Order.EstimatedDuration,
		services:    cleanNames(in.Order.Services),
		item: services.ItemCandidates{
			LabourCodeID:    in.Order.LabourCodeID,
			ItemName:        in.Order.ItemName,
			Brand:           in.Order.Brand,
			Quantity:        in.Order.Quantity,
			TireType:        in.Order.TireType,
			InventoryItemID: in.Order.InventoryItemID,
		},
		vehicle:   in.Vehicle,
		component: in.AddComponent,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(in.OrderID),
		cmd.setOrderType(in.Order.OrderType),
		cmd.setPlate(in.Vehicle),
	); err != nil {
		return UpdateOrderFromExtractionCommand{}, err
	}
	return cmd, nil
}

func (c UpdateOrderFromExtractionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderFromExtractionCommandIsNotConstructed)
}

func (c UpdateOrderFromExtractionCommand) Scope() branch.Scope { return c.scope }

func (c UpdateOrderFromExtractionCommand) Actor() string { return c.actor }

func (c UpdateOrderFromExtractionCommand) OrderID() kernel.UUID { return c.orderID }

func (c UpdateOrderFromExtractionCommand) Customer() ExtractedCustomer { return c.customer }

// OrderType is nil when the paperwork did not name one.
func (c UpdateOrderFromExtractionCommand) OrderType() *order.Type { return c.orderType }

// Priority falls back to medium for unknown values. ok is false when none was given.
func (c UpdateOrderFromExtractionCommand) Priority() (order.Priority, bool) {
	return order.PriorityOrDefault(c.priority), c.hasPriority
}

func (c UpdateOrderFromExtractionCommand) Description() string { return c.description }

func (c UpdateOrderFromExtractionCommand) EstimatedDuration() *int { return c.estimate }

func (c UpdateOrderFromExtractionCommand) Services() []string { return c.services }

func (c UpdateOrderFromExtractionCommand) Item() services.ItemCandidates { return c.item }

// Vehicle is nil when no vehicle section was extracted.
func (c UpdateOrderFromExtractionCommand) Vehicle() *ExtractedVehicle { return c.vehicle }

// Plate is the normalised plate of the vehicle section, if any.
func (c UpdateOrderFromExtractionCommand) Plate() *kernel.PlateNumber { return c.plate }

func (c UpdateOrderFromExtractionCommand) Component() *ComponentInput { return c.component }

func (c *UpdateOrderFromExtractionCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	c.orderID = id
	return nil
}

func (c *UpdateOrderFromExtractionCommand) setOrderType(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	t, err := order.ParseType(raw)
	if err != nil {
		return err
	}
	c.orderType = &t
	return nil
}

func (c *UpdateOrderFromExtractionCommand) setPlate(v *ExtractedVehicle) error {
	if v == nil || strings.TrimSpace(v.Plate) == "" {
		return nil
	}
	plate, err := kernel.NewPlateNumber(v.Plate)
	if err != nil {
		return err
	}
	c.plate = &plate
	return nil
}
