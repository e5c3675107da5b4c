package ports

import (
	"context"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/vehicle"
)

type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*vehicle.Vehicle, error)

	// FindByPlate returns the vehicle with the plate inside scope. When several
	// visible branches know the plate, the most recently registered one wins.
	FindByPlate(ctx context.Context, scope branch.Scope, plate kernel.PlateNumber) (*vehicle.Vehicle, error)
}
