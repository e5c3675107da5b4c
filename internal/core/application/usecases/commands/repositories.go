// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, mutates aggregates
// through their own methods and commits. Side effects that must not undo the
// order change, like stock adjustment, run after the commit.
package commands

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// OrderUoW covers operations on an existing order: transitions, completion
	// and overrun notes. The catalog is needed for delay reasons.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IntakeUoW covers order intake and enrichment, which touch customers,
	// vehicles and orders in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   customer := ... uow.CustomerRepository()
	//   vehicle := ... uow.VehicleRepository()
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	IntakeUoW interface {
		TxManager
		OrderRepoFactory
		CustomerRepoFactory
		VehicleRepoFactory
		CatalogRepoFactory
		InventoryRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// InventoryUoW covers stock adjustments and the order flag recording them.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
		OrderRepoFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// BranchUoW covers branch management.
	BranchUoW interface {
		TxManager
		BranchRepoFactory
	}

	// BranchUoWFactory creates new branch unit of work instances.
	BranchUoWFactory interface {
		Create() BranchUoW
	}
)

// OrderStockAdjuster applies the pending stock decrement of a committed order.
type OrderStockAdjuster interface {
	ApplyForOrder(ctx context.Context, orderID kernel.UUID) (remaining int, err error)
}
