package order

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> InProgress ──> Overdue ──> Completed
//	   │            │             │
//	   │            └─────────────┼──────> Completed
//	   └────────────┴─────────────┴──────> Cancelled
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Created
	InProgress
	Overdue
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		InProgress: "in_progress",
		Overdue:    "overdue",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getTransitions is the allowed-transition table. Terminal states have no entry.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown states have no outbound transitions
	return map[Status][]Status{
		Created:    {InProgress, Cancelled},
		InProgress: {Overdue, Completed, Cancelled},
		Overdue:    {Completed, Cancelled},
	}
}

// ParseStatus accepts the lower-case wire names.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for s, name := range getStatusStrings() {
		if s != Unknown && name == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", raw))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsOpen reports whether work on the order is still pending or running.
func (s Status) IsOpen() bool {
	return s == Created || s == InProgress || s == Overdue
}

// CanTransitionTo consults the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// OpenStatuses lists the non-terminal states.
func OpenStatuses() []Status {
	return []Status{Created, InProgress, Overdue}
}
