package queries

import (
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListCatalogQueryIsNotConstructed = errors.New(
	"ListCatalogQuery must be created via NewListCatalogQuery constructor",
)

// ListCatalogQuery reads the active reference data the intake screens offer.
type ListCatalogQuery struct {
	guard guard.ConstructorGuard
}

func NewListCatalogQuery() ListCatalogQuery {
	return ListCatalogQuery{guard: guard.NewConstructorGuard()}
}

func (q ListCatalogQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogQueryIsNotConstructed)
}

type OfferingView struct {
	ID               kernel.UUID
	Name             string
	EstimatedMinutes int
}

type InventoryItemView struct {
	ID       kernel.UUID
	Name     string
	Brand    string
	Quantity int
	Price    decimal.Decimal
}

type LabourCodeView struct {
	ID          kernel.UUID
	Code        string
	Description string
	Category    string
	ItemName    string
	Brand       string
	Quantity    int
	TireType    string
}

type ListCatalogQueryResponse struct {
	ServiceTypes   []OfferingView
	ServiceAddons  []OfferingView
	InventoryItems []InventoryItemView
	LabourCodes    []LabourCodeView
}
