// Package orderrepo persists order aggregates and their line items.
package orderrepo

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders table. Status is stored as its integer code.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number      string     `gorm:"size:32;uniqueIndex"`
	BranchID    uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index"`
	VehicleID   *uuid.UUID `gorm:"type:uuid;index"`
	Type        string     `gorm:"size:20"`
	Status      int        `gorm:"index"`
	Priority    string     `gorm:"size:10"`
	Description string

	Item    ItemDTO    `gorm:"embedded;embeddedPrefix:item_"`
	Inquiry InquiryDTO `gorm:"embedded;embeddedPrefix:inquiry_"`

	EstimatedDuration *int
	ActualDuration    *int

	CreatedAt   time.Time `gorm:"index;autoCreateTime:false"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CompletedBy        string `gorm:"size:100"`
	CancelledBy        string `gorm:"size:100"`
	CancellationReason string

	Delay   DelayDTO   `gorm:"embedded;embeddedPrefix:delay_"`
	Overrun OverrunDTO `gorm:"embedded;embeddedPrefix:overrun_"`

	StockAdjusted bool

	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ItemDTO struct {
	Name     string `gorm:"size:200"`
	Brand    string `gorm:"size:100"`
	Quantity int
	TireType string `gorm:"size:50"`
}

type InquiryDTO struct {
	Type              string `gorm:"size:100"`
	Questions         string
	ContactPreference string `gorm:"size:20"`
	FollowUpDate      *time.Time
}

type DelayDTO struct {
	ReasonID          *uuid.UUID `gorm:"type:uuid"`
	ReportedAt        *time.Time
	ReportedBy        string `gorm:"size:100"`
	ExceededThreshold bool
}

type OverrunDTO struct {
	Reason     string
	ReportedAt *time.Time
	ReportedBy string `gorm:"size:100"`
}

// LineItemDTO is one row of order_line_items. Position keeps the work list order.
type LineItemDTO struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	Kind      string `gorm:"size:20"`
	Reference string `gorm:"size:200"`
	Note      string
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	item := o.Item()
	inquiry := o.Inquiry()
	delay := o.Delay()
	overrun := o.Overrun()

	dto := OrderDTO{
		ID:          o.ID().Bytes(),
		Number:      o.Number().String(),
		BranchID:    o.BranchID().Bytes(),
		CustomerID:  o.CustomerID().Bytes(),
		VehicleID:   optionalID(o.VehicleID()),
		Type:        string(o.Type()),
		Status:      int(o.Status()),
		Priority:    string(o.Priority()),
		Description: o.Description(),
		Item: ItemDTO{
			Name:     item.Name,
			Brand:    item.Brand,
			Quantity: item.Quantity,
			TireType: item.TireType,
		},
		Inquiry: InquiryDTO{
			Type:              inquiry.InquiryType,
			Questions:         inquiry.Questions,
			ContactPreference: inquiry.ContactPreference,
			FollowUpDate:      inquiry.FollowUpDate,
		},
		EstimatedDuration:  o.EstimatedDuration(),
		ActualDuration:     o.ActualDuration(),
		CreatedAt:          o.CreatedAt(),
		StartedAt:          o.StartedAt(),
		CompletedAt:        o.CompletedAt(),
		CancelledAt:        o.CancelledAt(),
		CompletedBy:        o.CompletedBy(),
		CancelledBy:        o.CancelledBy(),
		CancellationReason: o.CancellationReason(),
		Delay: DelayDTO{
			ReasonID:          optionalID(delay.ReasonID),
			ReportedAt:        delay.ReportedAt,
			ReportedBy:        delay.ReportedBy,
			ExceededThreshold: delay.ExceededThreshold,
		},
		Overrun: OverrunDTO{
			Reason:     overrun.Reason,
			ReportedAt: overrun.ReportedAt,
			ReportedBy: overrun.ReportedBy,
		},
		StockAdjusted: o.StockAdjusted(),
	}

	for i, line := range o.LineItems() {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			Kind:      string(line.Kind()),
			Reference: line.Reference(),
			Note:      line.Note(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := restoreID(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	reasonID, err := restoreID(dto.Delay.ReasonID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.LineItems))
	for _, l := range dto.LineItems {
		line, lineErr := order.NewLineItem(order.LineItemKind(l.Kind), l.Reference, l.Note)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		Number:      dto.Number,
		BranchID:    branchID,
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		Type:        order.Type(dto.Type),
		Status:      order.Status(dto.Status),
		Priority:    order.Priority(dto.Priority),
		Description: dto.Description,
		Item: order.Item{
			Name:     dto.Item.Name,
			Brand:    dto.Item.Brand,
			Quantity: dto.Item.Quantity,
			TireType: dto.Item.TireType,
		},
		Inquiry: order.InquiryDetails{
			InquiryType:       dto.Inquiry.Type,
			Questions:         dto.Inquiry.Questions,
			ContactPreference: dto.Inquiry.ContactPreference,
			FollowUpDate:      utcPtr(dto.Inquiry.FollowUpDate),
		},
		LineItems:          lines,
		EstimatedDuration:  dto.EstimatedDuration,
		ActualDuration:     dto.ActualDuration,
		CreatedAt:          dto.CreatedAt.UTC(),
		StartedAt:          utcPtr(dto.StartedAt),
		CompletedAt:        utcPtr(dto.CompletedAt),
		CancelledAt:        utcPtr(dto.CancelledAt),
		CompletedBy:        dto.CompletedBy,
		CancelledBy:        dto.CancelledBy,
		CancellationReason: dto.CancellationReason,
		Delay: order.DelayRecord{
			ReasonID:          reasonID,
			ReportedAt:        utcPtr(dto.Delay.ReportedAt),
			ReportedBy:        dto.Delay.ReportedBy,
			ExceededThreshold: dto.Delay.ExceededThreshold,
		},
		Overrun: order.OverrunNote{
			Reason:     dto.Overrun.Reason,
			ReportedAt: utcPtr(dto.Overrun.ReportedAt),
			ReportedBy: dto.Overrun.ReportedBy,
		},
		StockAdjusted: dto.StockAdjusted,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
