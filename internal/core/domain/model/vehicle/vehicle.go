// Package vehicle provides the Vehicle aggregate. A plate is unique within a
// branch; the same plate under another branch is a different vehicle.
package vehicle

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Vehicle belongs to exactly one customer at a time.
type Vehicle struct {
	id          kernel.UUID
	customerID  kernel.UUID
	branchID    kernel.UUID
	plateNumber kernel.PlateNumber
	make        string
	model       string
	vehicleType string

	isConstructed bool
}

// NewVehicle registers a plate for a customer under branchID.
func NewVehicle(id, customerID, branchID kernel.UUID, plate kernel.PlateNumber) (*Vehicle, error) {
	v := &Vehicle{isConstructed: true}

	if err := errors.Join(
		v.setID(id),
		v.setCustomerID(customerID),
		v.setBranchID(branchID),
		v.setPlateNumber(plate),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle rebuilds a persisted vehicle.
func RestoreVehicle(
	id, customerID, branchID kernel.UUID,
	plate kernel.PlateNumber,
	vehicleMake, model, vehicleType string,
) (*Vehicle, error) {
	v, err := NewVehicle(id, customerID, branchID, plate)
	if err != nil {
		return nil, err
	}
	v.UpdateDetails(vehicleMake, model, vehicleType)
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

func (v *Vehicle) ID() kernel.UUID { return v.id }

func (v *Vehicle) CustomerID() kernel.UUID { return v.customerID }

func (v *Vehicle) BranchID() kernel.UUID { return v.branchID }

func (v *Vehicle) PlateNumber() kernel.PlateNumber { return v.plateNumber }

func (v *Vehicle) Make() string { return v.make }

func (v *Vehicle) Model() string { return v.model }

func (v *Vehicle) VehicleType() string { return v.vehicleType }

// TransferTo moves the vehicle to another customer.
func (v *Vehicle) TransferTo(customerID kernel.UUID) error {
	return v.setCustomerID(customerID)
}

// UpdateDetails overwrites make, model and type; blank arguments keep the current value.
func (v *Vehicle) UpdateDetails(vehicleMake, model, vehicleType string) {
	if s := strings.TrimSpace(vehicleMake); s != "" {
		v.make = s
	}
	if s := strings.TrimSpace(model); s != "" {
		v.model = s
	}
	if s := strings.TrimSpace(vehicleType); s != "" {
		v.vehicleType = s
	}
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	v.customerID = customerID
	return nil
}

func (v *Vehicle) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch", err)
	}
	v.branchID = branchID
	return nil
}

func (v *Vehicle) setPlateNumber(plate kernel.PlateNumber) error {
	if err := plate.Validate(); err != nil {
		return err
	}
	v.plateNumber = plate
	return nil
}
