// Package inventoryrepo persists stock items.
package inventoryrepo

import (
	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is the inventory_items table. Prices keep two decimals.
type ItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:200;index"`
	Brand     string          `gorm:"size:100"`
	Quantity  int             `gorm:"not null;default:0"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive  bool
}

func (ItemDTO) TableName() string {
	return "inventory_items"
}

func fromDomain(item *inventory.Item) ItemDTO {
	return ItemDTO{
		ID:        item.ID().Bytes(),
		Name:      item.Name(),
		Brand:     item.Brand(),
		Quantity:  item.Quantity(),
		Price:     item.Price(),
		CostPrice: item.CostPrice(),
		IsActive:  item.IsActive(),
	}
}

func toDomain(dto ItemDTO) (*inventory.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return inventory.NewItem(id, dto.Name, dto.Brand, dto.Quantity, dto.Price, dto.CostPrice, dto.IsActive)
}
