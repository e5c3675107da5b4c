package order

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// Type classifies what the order is about.
type Type string

const (
	Service     Type = "service"
	Sales       Type = "sales"
	Inquiry     Type = "inquiry"
	Labour      Type = "labour"
	Unspecified Type = "unspecified"
	Mixed       Type = "mixed"
)

// ParseType accepts the six order types.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case Service, Sales, Inquiry, Labour, Unspecified, Mixed:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("order_type", fmt.Errorf("%q is not an order type", raw))
	}
}

// Priority orders the workshop queue.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
	Urgent Priority = "urgent"
)

// ParsePriority accepts the four priorities.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case Low, Medium, High, Urgent:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a priority", raw))
	}
}

// PriorityOrDefault falls back to Medium for blank or unknown input.
func PriorityOrDefault(raw string) Priority {
	p, err := ParsePriority(raw)
	if err != nil {
		return Medium
	}
	return p
}
