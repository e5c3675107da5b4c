package vehiclerepo

import (
	"context"
	"errors"

	"tracker/internal/adapters/out/postgres/scoping"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVehicleRepository implements ports.VehicleRepository using GORM.
type GormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the mutable columns. The plate and branch never change.
func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).
		Where("id = ?", dto.ID).
		Select("CustomerID", "Make", "Model", "VehicleType").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", aggregate.ID().String())
	}
	return nil
}

func (r *GormVehicleRepository) Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	err := r.db.WithContext(ctx).
		Scopes(scoping.Branches(scope, "branch_id")).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormVehicleRepository) FindByPlate(
	ctx context.Context, scope branch.Scope, plate kernel.PlateNumber,
) (*vehicle.Vehicle, error) {
	if err := plate.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	err := r.db.WithContext(ctx).
		Scopes(scoping.Branches(scope, "branch_id")).
		Where("plate_number = ?", plate.String()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", plate.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
