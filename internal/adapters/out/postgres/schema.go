package postgres

import (
	"tracker/internal/adapters/out/postgres/branchrepo"
	"tracker/internal/adapters/out/postgres/catalogrepo"
	"tracker/internal/adapters/out/postgres/customerrepo"
	"tracker/internal/adapters/out/postgres/inventoryrepo"
	"tracker/internal/adapters/out/postgres/orderrepo"
	"tracker/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, parents first.
func Models() []any {
	return []any{
		&branchrepo.BranchDTO{},
		&customerrepo.CustomerDTO{},
		&vehiclerepo.VehicleDTO{},
		&catalogrepo.LabourCodeDTO{},
		&catalogrepo.ServiceTypeDTO{},
		&catalogrepo.ServiceAddonDTO{},
		&catalogrepo.DelayReasonCategoryDTO{},
		&catalogrepo.DelayReasonDTO{},
		&inventoryrepo.ItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
