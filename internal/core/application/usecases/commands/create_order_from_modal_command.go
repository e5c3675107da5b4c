package commands

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/guard"
	"tracker/internal/pkg/validation"
)

var ErrCreateOrderFromModalCommandIsNotConstructed = errors.New(
	"CreateOrderFromModalCommand must be created via NewCreateOrderFromModalCommand constructor",
)

// ModalCustomerInput either points at an existing customer or describes a new one.
type ModalCustomerInput struct {
	ID               *kernel.UUID `json:"customer_id"`
	FullName         string       `json:"full_name" validate:"required_without=ID,max=200"`
	Phone            string       `json:"phone" validate:"required_without=ID,max=32"`
	Email            string       `json:"email" validate:"omitempty,email"`
	Address          string       `json:"address" validate:"max=500"`
	CustomerType     string       `json:"customer_type" validate:"omitempty,oneof=personal company government ngo"`
	PersonalSubtype  string       `json:"personal_subtype" validate:"omitempty,oneof=owner driver"`
	OrganizationName string       `json:"organization_name" validate:"max=200"`
	TaxNumber        string       `json:"tax_number" validate:"max=50"`
}

// ModalServiceInput holds the fields of a service order.
type ModalServiceInput struct {
	Services          []string `json:"services"`
	EstimatedDuration *int     `json:"estimated_duration" validate:"omitempty,gte=0"`
}

// ModalItemInput holds the item candidates of a sales or labour order.
type ModalItemInput struct {
	LabourCodeID    *kernel.UUID `json:"labour_code_id"`
	ItemName        string       `json:"item_name" validate:"max=200"`
	Brand           string       `json:"brand" validate:"max=100"`
	Quantity        int          `json:"quantity" validate:"gte=0"`
	TireType        string       `json:"tire_type" validate:"max=50"`
	InventoryItemID *kernel.UUID `json:"inventory_item_id"`
	TireServices    []string     `json:"tire_services"`
}

// ModalInquiryInput holds the fields of an inquiry order.
type ModalInquiryInput struct {
	InquiryType       string     `json:"inquiry_type" validate:"max=100"`
	Questions         string     `json:"questions"`
	ContactPreference string     `json:"contact_preference" validate:"omitempty,oneof=phone email sms whatsapp"`
	FollowUpDate      *time.Time `json:"follow_up_date"`
}

// CreateOrderFromModalInput is the full intake form.
type CreateOrderFromModalInput struct {
	Customer    ModalCustomerInput `json:"customer"`
	Plate       string             `json:"plate_number" validate:"max=20"`
	OrderType   string             `json:"order_type" validate:"required,oneof=service sales inquiry labour unspecified mixed"`
	Priority    string             `json:"priority"`
	Description string             `json:"description"`
	Service     ModalServiceInput  `json:"service"`
	Item        ModalItemInput     `json:"item"`
	Inquiry     ModalInquiryInput  `json:"inquiry"`
}

// CreateOrderFromModalCommand creates an order with its type-specific fields in one step.
type CreateOrderFromModalCommand struct { //nolint:recvcheck //using for validation
	scope          branch.Scope
	actor          string
	customerID     *kernel.UUID
	newCustomer    ModalCustomerInput
	classification customer.Classification
	plate          *kernel.PlateNumber
	orderType      order.Type
	priority       order.Priority
	description    string
	services       []string
	estimate       *int
	item           services.ItemCandidates
	tireServices   []string
	inquiry        order.InquiryDetails

	guard guard.ConstructorGuard
}

func NewCreateOrderFromModalCommand(
	scope branch.Scope, actor string, in CreateOrderFromModalInput,
) (CreateOrderFromModalCommand, error) {
	if err := validation.Struct(in); err != nil {
		return CreateOrderFromModalCommand{}, err
	}

	cmd := CreateOrderFromModalCommand{
		scope:       scope,
		actor:       strings.TrimSpace(actor),
		customerID:  in.Customer.ID,
		newCustomer: in.Customer,
		priority:    order.PriorityOrDefault(in.Priority),
		description: strings.TrimSpace(in.Description),
		services:    cleanNames(in.Service.Services),
		estimate:    in.Service.EstimatedDuration,
		item: services.ItemCandidates{
			LabourCodeID:    in.Item.LabourCodeID,
			ItemName:        in.Item.ItemName,
			Brand:           in.Item.Brand,
			Quantity:        in.Item.Quantity,
			TireType:        in.Item.TireType,
			InventoryItemID: in.Item.InventoryItemID,
		},
		tireServices: cleanNames(in.Item.TireServices),
		inquiry: order.InquiryDetails{
			InquiryType:       in.Inquiry.InquiryType,
			Questions:         in.Inquiry.Questions,
			ContactPreference: in.Inquiry.ContactPreference,
			FollowUpDate:      in.Inquiry.FollowUpDate,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderType(in.OrderType),
		cmd.setClassification(in.Customer),
		cmd.setPlate(in.Plate),
	); err != nil {
		return CreateOrderFromModalCommand{}, err
	}
	return cmd, nil
}

func (c CreateOrderFromModalCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderFromModalCommandIsNotConstructed)
}

func (c CreateOrderFromModalCommand) Scope() branch.Scope { return c.scope }

func (c CreateOrderFromModalCommand) Actor() string { return c.actor }

// CustomerID is set when an existing customer was picked.
func (c CreateOrderFromModalCommand) CustomerID() *kernel.UUID { return c.customerID }

func (c CreateOrderFromModalCommand) NewCustomer() ModalCustomerInput { return c.newCustomer }

func (c CreateOrderFromModalCommand) Classification() customer.Classification { return c.classification }

func (c CreateOrderFromModalCommand) Plate() *kernel.PlateNumber { return c.plate }

func (c CreateOrderFromModalCommand) OrderType() order.Type { return c.orderType }

func (c CreateOrderFromModalCommand) Priority() order.Priority { return c.priority }

func (c CreateOrderFromModalCommand) Description() string { return c.description }

func (c CreateOrderFromModalCommand) Services() []string { return c.services }

func (c CreateOrderFromModalCommand) EstimatedDuration() *int { return c.estimate }

func (c CreateOrderFromModalCommand) Item() services.ItemCandidates { return c.item }

func (c CreateOrderFromModalCommand) TireServices() []string { return c.tireServices }

func (c CreateOrderFromModalCommand) Inquiry() order.InquiryDetails { return c.inquiry }

func (c *CreateOrderFromModalCommand) setOrderType(raw string) error {
	t, err := order.ParseType(raw)
	if err != nil {
		return err
	}
	c.orderType = t
	return nil
}

// setClassification is only checked for new customers.
func (c *CreateOrderFromModalCommand) setClassification(in ModalCustomerInput) error {
	if in.ID != nil {
		return nil
	}
	classification, err := parseClassification(in.CustomerType, in.PersonalSubtype, in.OrganizationName, in.TaxNumber)
	if err != nil {
		return err
	}
	c.classification = classification
	return nil
}

func (c *CreateOrderFromModalCommand) setPlate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	plate, err := kernel.NewPlateNumber(raw)
	if err != nil {
		return err
	}
	c.plate = &plate
	return nil
}

// parseClassification defaults to a personal owner when no type is given.
func parseClassification(kind, subtype, organizationName, taxNumber string) (customer.Classification, error) {
	if strings.TrimSpace(kind) == "" {
		kind = string(customer.Personal)
	}
	t, err := customer.ParseType(kind)
	if err != nil {
		return customer.Classification{}, err
	}

	var sub customer.PersonalSubtype
	if t == customer.Personal {
		if strings.TrimSpace(subtype) == "" {
			subtype = string(customer.Owner)
		}
		if sub, err = customer.ParsePersonalSubtype(subtype); err != nil {
			return customer.Classification{}, err
		}
	}
	return customer.NewClassification(t, sub, organizationName, taxNumber)
}
