package catalog

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// DefaultBrand is used when a resolved item carries no brand.
const DefaultBrand = "Unbranded"

// LabourCode maps a shop code to the canonical item it stands for.
type LabourCode struct {
	id          kernel.UUID
	code        string
	description string
	category    string
	itemName    string
	brand       string
	quantity    int
	tireType    string
	isActive    bool
}

// LabourCodeDetails carries the optional item fields of a labour code.
type LabourCodeDetails struct {
	Description string
	Category    string
	ItemName    string
	Brand       string
	Quantity    int
	TireType    string
}

func NewLabourCode(id kernel.UUID, code string, details LabourCodeDetails, isActive bool) (*LabourCode, error) {
	code = strings.TrimSpace(code)

	var codeErr error
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	var quantityErr error
	if details.Quantity < 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", details.Quantity, 0, nil)
	}
	if err := errors.Join(id.Validate(), codeErr, quantityErr); err != nil {
		return nil, err
	}

	return &LabourCode{
		id:          id,
		code:        code,
		description: strings.TrimSpace(details.Description),
		category:    strings.TrimSpace(details.Category),
		itemName:    strings.TrimSpace(details.ItemName),
		brand:       strings.TrimSpace(details.Brand),
		quantity:    details.Quantity,
		tireType:    strings.TrimSpace(details.TireType),
		isActive:    isActive,
	}, nil
}

func (l *LabourCode) ID() kernel.UUID { return l.id }

func (l *LabourCode) Code() string { return l.code }

func (l *LabourCode) Description() string { return l.description }

func (l *LabourCode) Category() string { return l.category }

func (l *LabourCode) ItemName() string { return l.itemName }

func (l *LabourCode) Brand() string { return l.brand }

func (l *LabourCode) Quantity() int { return l.quantity }

func (l *LabourCode) TireType() string { return l.tireType }

func (l *LabourCode) IsActive() bool { return l.isActive }

// HasItem reports whether the code names a concrete item. Codes without an
// item name cannot resolve an order's item.
func (l *LabourCode) HasItem() bool { return l.itemName != "" }
