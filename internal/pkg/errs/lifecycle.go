package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrDelayReasonRequired = errors.New("delay reason required")
	ErrAdjustment          = errors.New("stock adjustment failed")
)

// InvalidTransitionError is returned when an order status change is not in the
// allowed-transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// DelayReasonRequiredError blocks a completion until a delay reason is supplied.
// The caller may resubmit with a reason.
type DelayReasonRequiredError struct {
	ElapsedMinutes int
}

func NewDelayReasonRequiredError(elapsedMinutes int) *DelayReasonRequiredError {
	return &DelayReasonRequiredError{ElapsedMinutes: elapsedMinutes}
}

func (e *DelayReasonRequiredError) Error() string {
	return fmt.Sprintf("%s: order ran for %d minutes", ErrDelayReasonRequired, e.ElapsedMinutes)
}

func (e *DelayReasonRequiredError) Unwrap() error {
	return ErrDelayReasonRequired
}

// AdjustmentError describes a stock decrement that could not be applied.
type AdjustmentError struct {
	ItemName string
	Brand    string
	Delta    int
	Cause    error
}

func NewAdjustmentError(itemName, brand string, delta int, cause error) *AdjustmentError {
	return &AdjustmentError{
		ItemName: itemName,
		Brand:    brand,
		Delta:    delta,
		Cause:    cause,
	}
}

func (e *AdjustmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s) by %d (cause: %v)", ErrAdjustment, e.ItemName, e.Brand, e.Delta, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s) by %d", ErrAdjustment, e.ItemName, e.Brand, e.Delta)
}

// Unwrap exposes both ErrAdjustment and the underlying cause to errors.Is.
func (e *AdjustmentError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrAdjustment}
	}
	return []error{ErrAdjustment, e.Cause}
}
