package queries

import (
	"time"

	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/vehicle"
)

type CustomerSummary struct {
	ID       kernel.UUID
	FullName string
	Phone    string
}

type VehicleSummary struct {
	ID          kernel.UUID
	PlateNumber string
	Make        string
	Model       string
}

// OrderView is the fixed-shape read model of one order.
//
// Kind selects the populated detail section:
//
//	service             -> Service
//	sales               -> Sales
//	inquiry             -> Inquiry
//	labour              -> Labour
//	unspecified, mixed  -> Generic
//
// Completion is set only for completed orders and Cancellation only for
// cancelled ones. ReadOnly is true for terminal orders.
type OrderView struct {
	Kind     order.Type
	Header   OrderHeader
	Customer *CustomerSummary
	Vehicle  *VehicleSummary

	Service *ServiceSection
	Sales   *SalesSection
	Inquiry *InquirySection
	Labour  *LabourSection
	Generic *GenericSection

	Delay        DelaySection
	Completion   *CompletionSection
	Cancellation *CancellationSection

	ReadOnly bool
}

type OrderHeader struct {
	ID                kernel.UUID
	Number            string
	BranchID          kernel.UUID
	Status            order.Status
	Priority          order.Priority
	Description       string
	EstimatedDuration *int
	CreatedAt         time.Time
	StartedAt         *time.Time
	ElapsedMinutes    int
	ExceedsThreshold  bool
}

// LineView is one entry of an order's work list.
type LineView struct {
	Kind      order.LineItemKind
	Reference string
	Note      string
}

type ItemView struct {
	Name     string
	Brand    string
	Quantity int
	TireType string
}

type ServiceSection struct {
	Services   []LineView
	Addons     []LineView
	Components []LineView
}

type SalesSection struct {
	Item          *ItemView
	Addons        []LineView
	Components    []LineView
	StockAdjusted bool
}

type InquirySection struct {
	InquiryType       string
	Questions         string
	ContactPreference string
	FollowUpDate      *time.Time
}

type LabourSection struct {
	LabourCodes []LineView
	Item        *ItemView
}

type GenericSection struct {
	LineItems []LineView
	Item      *ItemView
}

// DelaySection combines the structured delay reason and the free-text overrun note.
type DelaySection struct {
	ReasonID          *kernel.UUID
	ReasonReportedAt  *time.Time
	ReasonReportedBy  string
	ExceededThreshold bool
	OverrunReason     string
	OverrunReportedAt *time.Time
	OverrunReportedBy string
}

type CompletionSection struct {
	CompletedAt    time.Time
	CompletedBy    string
	ActualDuration *int
}

type CancellationSection struct {
	CancelledAt time.Time
	CancelledBy string
	Reason      string
}

// BuildOrderView assembles the read model. c and v may be nil when the order
// has no visible customer or vehicle.
func BuildOrderView(o *order.Order, c *customer.Customer, v *vehicle.Vehicle, now time.Time) OrderView {
	view := OrderView{
		Kind: o.Type(),
		Header: OrderHeader{
			ID:                o.ID(),
			Number:            o.Number().String(),
			BranchID:          o.BranchID(),
			Status:            o.Status(),
			Priority:          o.Priority(),
			Description:       o.Description(),
			EstimatedDuration: o.EstimatedDuration(),
			CreatedAt:         o.CreatedAt(),
			StartedAt:         o.StartedAt(),
			ElapsedMinutes:    o.ElapsedMinutes(now),
			ExceedsThreshold:  o.ExceedsThreshold(now),
		},
		ReadOnly: o.Status().IsTerminal(),
	}

	if c != nil {
		view.Customer = &CustomerSummary{ID: c.ID(), FullName: c.FullName(), Phone: c.Phone()}
	}
	if v != nil {
		view.Vehicle = &VehicleSummary{
			ID:          v.ID(),
			PlateNumber: v.PlateNumber().String(),
			Make:        v.Make(),
			Model:       v.Model(),
		}
	}

	lines := linesByKind(o.LineItems())
	switch o.Type() {
	case order.Service:
		view.Service = &ServiceSection{
			Services:   lines[order.ServiceLine],
			Addons:     lines[order.AddonLine],
			Components: lines[order.ComponentLine],
		}
	case order.Sales:
		view.Sales = &SalesSection{
			Item:          itemView(o.Item()),
			Addons:        lines[order.AddonLine],
			Components:    lines[order.ComponentLine],
			StockAdjusted: o.StockAdjusted(),
		}
	case order.Inquiry:
		details := o.Inquiry()
		view.Inquiry = &InquirySection{
			InquiryType:       details.InquiryType,
			Questions:         details.Questions,
			ContactPreference: details.ContactPreference,
			FollowUpDate:      details.FollowUpDate,
		}
	case order.Labour:
		view.Labour = &LabourSection{
			LabourCodes: lines[order.LabourCodeLine],
			Item:        itemView(o.Item()),
		}
	default:
		view.Generic = &GenericSection{
			LineItems: toLineViews(o.LineItems()),
			Item:      itemView(o.Item()),
		}
	}

	delay := o.Delay()
	overrun := o.Overrun()
	view.Delay = DelaySection{
		ReasonID:          delay.ReasonID,
		ReasonReportedAt:  delay.ReportedAt,
		ReasonReportedBy:  delay.ReportedBy,
		ExceededThreshold: delay.ExceededThreshold,
		OverrunReason:     overrun.Reason,
		OverrunReportedAt: overrun.ReportedAt,
		OverrunReportedBy: overrun.ReportedBy,
	}

	//nolint:exhaustive // only terminal statuses carry a closing section
	switch o.Status() {
	case order.Completed:
		completion := &CompletionSection{CompletedBy: o.CompletedBy(), ActualDuration: o.ActualDuration()}
		if at := o.CompletedAt(); at != nil {
			completion.CompletedAt = *at
		}
		view.Completion = completion
	case order.Cancelled:
		cancellation := &CancellationSection{CancelledBy: o.CancelledBy(), Reason: o.CancellationReason()}
		if at := o.CancelledAt(); at != nil {
			cancellation.CancelledAt = *at
		}
		view.Cancellation = cancellation
	}

	return view
}

func linesByKind(items []order.LineItem) map[order.LineItemKind][]LineView {
	grouped := make(map[order.LineItemKind][]LineView)
	for _, item := range items {
		grouped[item.Kind()] = append(grouped[item.Kind()], lineView(item))
	}
	return grouped
}

func toLineViews(items []order.LineItem) []LineView {
	views := make([]LineView, 0, len(items))
	for _, item := range items {
		views = append(views, lineView(item))
	}
	return views
}

func lineView(item order.LineItem) LineView {
	return LineView{Kind: item.Kind(), Reference: item.Reference(), Note: item.Note()}
}

func itemView(item order.Item) *ItemView {
	if item.IsZero() {
		return nil
	}
	return &ItemView{Name: item.Name, Brand: item.Brand, Quantity: item.Quantity, TireType: item.TireType}
}
