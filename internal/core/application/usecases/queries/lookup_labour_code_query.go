package queries

import (
	"errors"
	"strings"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrLookupLabourCodeQueryIsNotConstructed = errors.New(
	"LookupLabourCodeQuery must be created via NewLookupLabourCodeQuery constructor",
)

// MaxLabourCodeSuggestions caps the description search fallback.
const MaxLabourCodeSuggestions = 10

// LookupLabourCodeQuery finds labour codes by code, or by item name with an
// optional category. A code takes precedence over an item name.
type LookupLabourCodeQuery struct {
	code     string
	itemName string
	category string

	guard guard.ConstructorGuard
}

func NewLookupLabourCodeQuery(code, itemName, category string) (LookupLabourCodeQuery, error) {
	q := LookupLabourCodeQuery{
		code:     strings.TrimSpace(code),
		itemName: strings.TrimSpace(itemName),
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}
	if q.code == "" && q.itemName == "" {
		return LookupLabourCodeQuery{}, errs.NewValueIsRequiredError("code or item_name")
	}
	return q, nil
}

func (q LookupLabourCodeQuery) Validate() error {
	return q.guard.Validate(ErrLookupLabourCodeQueryIsNotConstructed)
}

func (q LookupLabourCodeQuery) Code() string { return q.code }

func (q LookupLabourCodeQuery) ItemName() string { return q.itemName }

func (q LookupLabourCodeQuery) Category() string { return q.category }
