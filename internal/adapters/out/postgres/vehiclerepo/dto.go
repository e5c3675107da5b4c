// Package vehiclerepo persists vehicles.
package vehiclerepo

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO is the vehicles table. A plate is registered once per branch.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_vehicles_branch_plate,priority:1"`
	PlateNumber string    `gorm:"size:20;index;uniqueIndex:idx_vehicles_branch_plate,priority:2"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Make        string    `gorm:"size:100"`
	Model       string    `gorm:"size:100"`
	VehicleType string    `gorm:"size:50"`
	CreatedAt   time.Time
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          v.ID().Bytes(),
		BranchID:    v.BranchID().Bytes(),
		PlateNumber: v.PlateNumber().String(),
		CustomerID:  v.CustomerID().Bytes(),
		Make:        v.Make(),
		Model:       v.Model(),
		VehicleType: v.VehicleType(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	plate, err := kernel.NewPlateNumber(dto.PlateNumber)
	if err != nil {
		return nil, err
	}
	return vehicle.RestoreVehicle(id, customerID, branchID, plate, dto.Make, dto.Model, dto.VehicleType)
}
