package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsClosed is returned when details of a completed or cancelled order are edited.
	ErrOrderIsClosed = errors.New("order is closed for editing")

	// ErrDuplicateComponent is returned when a component type is already on the order.
	ErrDuplicateComponent = errs.NewValueIsInvalidErrorWithCause(
		"component_type", errors.New("component of this type already added"),
	)
)

// Order is the unit of work tracked through the workshop. It is the aggregate
// root for its line items, delay record and overrun note.
//
// Order follows these invariants:
//   - identity, order number, branch and creation time never change
//   - status changes only through Transition, Cancel and QuickStop
//   - details of a terminal order are read-only
type Order struct {
	id         kernel.UUID
	number     Number
	branchID   kernel.UUID
	customerID kernel.UUID
	vehicleID  *kernel.UUID

	kind        Type
	status      Status
	priority    Priority
	description string
	item        Item
	inquiry     InquiryDetails
	lineItems   []LineItem

	estimatedDuration *int
	actualDuration    *int

	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	completedBy        string
	cancelledBy        string
	cancellationReason string

	delay   DelayRecord
	overrun OverrunNote

	stockAdjusted bool

	events        []Event
	isConstructed bool
}

// NewOrder opens an order in Created status with a freshly generated number.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), branchID, customer.ID(), &vehicleID, order.Service, order.Medium, now)
//	if err != nil {
//	    return err
//	}
//	o.AddLineItem(serviceLine)
func NewOrder(
	id, branchID, customerID kernel.UUID,
	vehicleID *kernel.UUID,
	kind Type,
	priority Priority,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBranchID(branchID),
		o.setCustomerID(customerID),
		o.setVehicleID(vehicleID),
		o.setType(kind),
		o.setPriority(priority),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.number = NewNumber(createdAt)
	o.raise(EventCreated, Unknown, "", createdAt)
	return o, nil
}

// Snapshot is the full persisted state of an order, used to restore it.
type Snapshot struct {
	ID                 kernel.UUID
	Number             string
	BranchID           kernel.UUID
	CustomerID         kernel.UUID
	VehicleID          *kernel.UUID
	Type               Type
	Status             Status
	Priority           Priority
	Description        string
	Item               Item
	Inquiry            InquiryDetails
	LineItems          []LineItem
	EstimatedDuration  *int
	ActualDuration     *int
	CreatedAt          time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CompletedBy        string
	CancelledBy        string
	CancellationReason string
	Delay              DelayRecord
	Overrun            OverrunNote
	StockAdjusted      bool
}

// RestoreOrder rebuilds a persisted order. No events are recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		description:        s.Description,
		inquiry:            s.Inquiry,
		lineItems:          slices.Clone(s.LineItems),
		estimatedDuration:  s.EstimatedDuration,
		actualDuration:     s.ActualDuration,
		startedAt:          s.StartedAt,
		completedAt:        s.CompletedAt,
		cancelledAt:        s.CancelledAt,
		completedBy:        s.CompletedBy,
		cancelledBy:        s.CancelledBy,
		cancellationReason: s.CancellationReason,
		delay:              s.Delay,
		overrun:            s.Overrun,
		stockAdjusted:      s.StockAdjusted,
		isConstructed:      true,
	}

	number, numberErr := ParseNumber(s.Number)
	item, itemErr := s.Item.normalize()
	if err := errors.Join(
		o.setID(s.ID),
		numberErr,
		o.setBranchID(s.BranchID),
		o.setCustomerID(s.CustomerID),
		o.setVehicleID(s.VehicleID),
		o.setType(s.Type),
		s.Status.Validate(),
		o.setPriority(s.Priority),
		o.setCreatedAt(s.CreatedAt),
		itemErr,
	); err != nil {
		return nil, err
	}

	o.number = number
	o.status = s.Status
	o.item = item
	return o, nil
}

// Validate ensures the order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) Number() Number { return o.number }

func (o *Order) BranchID() kernel.UUID { return o.branchID }

func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// VehicleID is nil for orders without a vehicle, e.g. counter sales.
func (o *Order) VehicleID() *kernel.UUID { return o.vehicleID }

func (o *Order) Type() Type { return o.kind }

func (o *Order) Status() Status { return o.status }

func (o *Order) Priority() Priority { return o.priority }

func (o *Order) Description() string { return o.description }

func (o *Order) Item() Item { return o.item }

func (o *Order) Inquiry() InquiryDetails { return o.inquiry }

// LineItems returns a copy of the ordered work list.
func (o *Order) LineItems() []LineItem { return slices.Clone(o.lineItems) }

// EstimatedDuration is in minutes; nil when unknown.
func (o *Order) EstimatedDuration() *int { return o.estimatedDuration }

// ActualDuration is in minutes and set on completion.
func (o *Order) ActualDuration() *int { return o.actualDuration }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) StartedAt() *time.Time { return o.startedAt }

func (o *Order) CompletedAt() *time.Time { return o.completedAt }

func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

func (o *Order) CompletedBy() string { return o.completedBy }

func (o *Order) CancelledBy() string { return o.cancelledBy }

func (o *Order) CancellationReason() string { return o.cancellationReason }

func (o *Order) Delay() DelayRecord { return o.delay }

func (o *Order) Overrun() OverrunNote { return o.overrun }

func (o *Order) StockAdjusted() bool { return o.stockAdjusted }

// AssignCustomer relinks the order, e.g. once paperwork identifies the real customer.
func (o *Order) AssignCustomer(customerID kernel.UUID) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setCustomerID(customerID)
}

// AssignVehicle relinks the order to a vehicle.
func (o *Order) AssignVehicle(vehicleID kernel.UUID) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setVehicleID(&vehicleID)
}

// SetDescription replaces the free-text description.
func (o *Order) SetDescription(description string) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	o.description = strings.TrimSpace(description)
	return nil
}

// SetType reclassifies the order, e.g. once paperwork shows it was a sale.
func (o *Order) SetType(kind Type) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setType(kind)
}

// SetPriority changes the queue priority.
func (o *Order) SetPriority(priority Priority) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setPriority(priority)
}

// SetItem records the resolved item. A blank tire type defaults to DefaultTireType.
func (o *Order) SetItem(item Item) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	normalized, err := item.normalize()
	if err != nil {
		return err
	}
	o.item = normalized
	return nil
}

// SetInquiry records the inquiry details.
func (o *Order) SetInquiry(details InquiryDetails) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	details.InquiryType = strings.TrimSpace(details.InquiryType)
	details.Questions = strings.TrimSpace(details.Questions)
	details.ContactPreference = strings.TrimSpace(details.ContactPreference)
	o.inquiry = details
	return nil
}

// SetEstimatedDuration stores the estimate in minutes. Zero clears it.
func (o *Order) SetEstimatedDuration(minutes int) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if minutes < 0 {
		return errs.NewValueIsOutOfRangeError("estimated_duration", minutes, 0, nil)
	}
	if minutes == 0 {
		o.estimatedDuration = nil
		return nil
	}
	o.estimatedDuration = &minutes
	return nil
}

// AddLineItem appends to the work list.
func (o *Order) AddLineItem(item LineItem) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if item.kind == "" {
		return errs.NewValueIsRequiredError("line_item")
	}
	o.lineItems = append(o.lineItems, item)
	return nil
}

// ReplaceLineItems swaps every line item of the given kind for the new list,
// keeping the other kinds in place.
func (o *Order) ReplaceLineItems(kind LineItemKind, items []LineItem) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	kept := make([]LineItem, 0, len(o.lineItems)+len(items))
	for _, existing := range o.lineItems {
		if existing.kind != kind {
			kept = append(kept, existing)
		}
	}
	for _, item := range items {
		if item.kind != kind {
			return errs.NewValueIsInvalidErrorWithCause("line_item_kind", fmt.Errorf("%s is not %s", item.kind, kind))
		}
		kept = append(kept, item)
	}
	o.lineItems = kept
	return nil
}

// AddComponent attaches a service or sales component with its reason.
// A component type may appear once per order.
func (o *Order) AddComponent(componentType Type, reason string) error {
	if componentType != Service && componentType != Sales {
		return errs.NewValueIsInvalidErrorWithCause("component_type", fmt.Errorf("%q cannot be a component", componentType))
	}
	for _, existing := range o.lineItems {
		if existing.kind == ComponentLine && existing.reference == string(componentType) {
			return ErrDuplicateComponent
		}
	}

	line, err := NewLineItem(ComponentLine, string(componentType), reason)
	if err != nil {
		return err
	}
	if line.note == "" {
		return errs.NewValueIsRequiredError("component_reason")
	}
	return o.AddLineItem(line)
}

// StockAdjustment returns the pending stock decrement of a sales order, if any.
func (o *Order) StockAdjustment() (name, brand string, delta int, ok bool) {
	if o.kind != Sales || o.stockAdjusted {
		return "", "", 0, false
	}
	if o.item.Name == "" || o.item.Brand == "" || o.item.Quantity <= 0 {
		return "", "", 0, false
	}
	return o.item.Name, o.item.Brand, -o.item.Quantity, true
}

// MarkStockAdjusted records that the stock decrement has been applied.
func (o *Order) MarkStockAdjusted(at time.Time) {
	if o.stockAdjusted {
		return
	}
	o.stockAdjusted = true
	o.raise(EventStockAdjusted, o.status, "", at)
}

func (o *Order) ensureEditable() error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsClosed, o.status)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch", err)
	}
	o.branchID = branchID
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID == nil {
		o.vehicleID = nil
		return nil
	}
	if err := vehicleID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", err)
	}
	id := *vehicleID
	o.vehicleID = &id
	return nil
}

func (o *Order) setType(kind Type) error {
	parsed, err := ParseType(string(kind))
	if err != nil {
		return err
	}
	o.kind = parsed
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	parsed, err := ParsePriority(string(priority))
	if err != nil {
		return err
	}
	o.priority = parsed
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = createdAt
	return nil
}
