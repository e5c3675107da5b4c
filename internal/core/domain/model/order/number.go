package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{6}$`)

// Number is the human-facing order reference, ORD-YYYYMMDD-XXXXXX.
// It is generated once and never changes.
type Number struct {
	value string
}

// NewNumber generates a number for an order created at the given time.
func NewNumber(createdAt time.Time) Number {
	suffix := strings.ToUpper(strings.ReplaceAll(kernel.NewUUID().String(), "-", ""))[:6]
	return Number{value: fmt.Sprintf("ORD-%s-%s", createdAt.UTC().Format("20060102"), suffix)}
}

// ParseNumber restores a stored number.
func ParseNumber(raw string) (Number, error) {
	if !numberPattern.MatchString(raw) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order_number", fmt.Errorf("%q is malformed", raw))
	}
	return Number{value: raw}, nil
}

func (n Number) String() string { return n.value }

func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	return nil
}
