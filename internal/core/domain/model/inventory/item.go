// Package inventory provides stock items. Quantities change only through
// Item.Adjust, which is driven by sales orders.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	ErrInsufficientStock    = errors.New("insufficient stock")
)

// Item is a stocked product identified by name and brand.
type Item struct {
	id        kernel.UUID
	name      string
	brand     string
	quantity  int
	price     decimal.Decimal
	costPrice decimal.Decimal
	isActive  bool

	isConstructed bool
}

func NewItem(
	id kernel.UUID,
	name, brand string,
	quantity int,
	price, costPrice decimal.Decimal,
	isActive bool,
) (*Item, error) {
	item := &Item{
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
		item.setPrices(price, costPrice),
	); err != nil {
		return nil, err
	}
	item.brand = strings.TrimSpace(brand)

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID { return i.id }

func (i *Item) Name() string { return i.name }

func (i *Item) Brand() string { return i.brand }

func (i *Item) Quantity() int { return i.quantity }

func (i *Item) Price() decimal.Decimal { return i.price }

func (i *Item) CostPrice() decimal.Decimal { return i.costPrice }

func (i *Item) IsActive() bool { return i.isActive }

// Margin is price minus cost price.
func (i *Item) Margin() decimal.Decimal { return i.price.Sub(i.costPrice) }

// Adjust applies delta to the stock level and returns what remains.
// Stock never goes below zero; such a request fails with ErrInsufficientStock
// and leaves the quantity untouched.
func (i *Item) Adjust(delta int) (int, error) {
	next := i.quantity + delta
	if next < 0 {
		return i.quantity, fmt.Errorf("%w: %d on hand, %d requested", ErrInsufficientStock, i.quantity, -delta)
	}
	i.quantity = next
	return next, nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, nil)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrices(price, costPrice decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if costPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cost_price", fmt.Errorf("%s is negative", costPrice))
	}
	i.price = price
	i.costPrice = costPrice
	return nil
}
