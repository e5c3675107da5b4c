package commands

import (
	"context"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// itemCatalog lets the item resolver read through the repositories of the
// current unit of work.
type itemCatalog struct {
	catalog   ports.CatalogRepository
	inventory ports.InventoryRepository
}

var _ services.ItemCatalog = itemCatalog{}

func (c itemCatalog) GetLabourCode(ctx context.Context, id kernel.UUID) (*catalog.LabourCode, error) {
	return c.catalog.GetLabourCode(ctx, id)
}

func (c itemCatalog) GetInventoryItem(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	return c.inventory.Get(ctx, id)
}
