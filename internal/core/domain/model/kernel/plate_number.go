package kernel

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

const maxPlateNumberLength = 20

// PlateNumber is a normalised vehicle registration: surrounding whitespace is
// removed and letters are upper-cased, so "  abc123 " and "ABC123" compare equal.
// Plates are unique per branch, not globally.
type PlateNumber struct {
	value string
}

// NewPlateNumber normalises and validates a raw plate.
func NewPlateNumber(raw string) (PlateNumber, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return PlateNumber{}, errs.NewValueIsRequiredError("plate_number")
	}
	if len(value) > maxPlateNumberLength {
		return PlateNumber{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"plate_number", len(value), 1, maxPlateNumberLength,
			fmt.Errorf("%q is too long", value),
		)
	}
	return PlateNumber{value: value}, nil
}

func (p PlateNumber) String() string {
	return p.value
}

// IsEqual compares normalised values.
func (p PlateNumber) IsEqual(other PlateNumber) bool {
	return p.value == other.value
}

// Validate rejects the zero value.
func (p PlateNumber) Validate() error {
	if p.value == "" {
		return errs.NewValueIsRequiredError("plate_number")
	}
	return nil
}
