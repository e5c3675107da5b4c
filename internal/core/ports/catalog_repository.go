package ports

import (
	"context"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"
)

// CatalogRepository reads reference data. It never writes.
type CatalogRepository interface {
	GetLabourCode(ctx context.Context, id kernel.UUID) (*catalog.LabourCode, error)

	// ServiceTypesByNames returns the service types with the given names,
	// matched case-insensitively. Unknown names are skipped.
	ServiceTypesByNames(ctx context.Context, names []string) ([]*catalog.ServiceType, error)

	// ServiceAddonsByNames is ServiceTypesByNames for add-ons.
	ServiceAddonsByNames(ctx context.Context, names []string) ([]*catalog.ServiceAddon, error)

	GetDelayReason(ctx context.Context, id kernel.UUID) (*catalog.DelayReason, error)
}

// InventoryRepository persists stock items.
type InventoryRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)

	// FindByNameAndBrand matches case-insensitively and locks the row for the
	// rest of the transaction.
	FindByNameAndBrand(ctx context.Context, name, brand string) (*inventory.Item, error)

	Update(ctx context.Context, item *inventory.Item) error
}
