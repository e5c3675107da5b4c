package ports

import (
	"context"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
)

type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*customer.Customer, error)

	// FindByNameAndPhone looks a customer up inside one branch.
	FindByNameAndPhone(ctx context.Context, branchID kernel.UUID, fullName, phone string) (*customer.Customer, error)
}
