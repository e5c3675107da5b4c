package order

import (
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// DefaultTireType is assumed for sales items when none is given.
const DefaultTireType = "New"

// Item is the product or labour an order is about.
type Item struct {
	Name     string
	Brand    string
	Quantity int
	TireType string
}

// IsZero reports whether no item has been resolved.
func (i Item) IsZero() bool {
	return i.Name == ""
}

func (i Item) normalize() (Item, error) {
	i.Name = strings.TrimSpace(i.Name)
	i.Brand = strings.TrimSpace(i.Brand)
	i.TireType = strings.TrimSpace(i.TireType)
	if i.Quantity < 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", i.Quantity, 0, nil)
	}
	if i.Name != "" && i.TireType == "" {
		i.TireType = DefaultTireType
	}
	return i, nil
}

// InquiryDetails are captured for inquiry orders.
type InquiryDetails struct {
	InquiryType       string
	Questions         string
	ContactPreference string
	FollowUpDate      *time.Time
}

// IsZero reports whether none of the inquiry fields were given.
func (d InquiryDetails) IsZero() bool {
	return d.InquiryType == "" && d.Questions == "" && d.ContactPreference == "" && d.FollowUpDate == nil
}

// DelayRecord is the structured justification for an overrun.
type DelayRecord struct {
	ReasonID          *kernel.UUID
	ReportedAt        *time.Time
	ReportedBy        string
	ExceededThreshold bool
}

// OverrunNote is the free-text overrun comment. ReportedAt and ReportedBy
// are set by the first write only.
type OverrunNote struct {
	Reason     string
	ReportedAt *time.Time
	ReportedBy string
}
