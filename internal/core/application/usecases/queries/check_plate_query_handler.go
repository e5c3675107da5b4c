package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckPlateQueryHandler looks a plate up across the visible branches. When
// several branches know the plate, the most recently registered vehicle wins.
type CheckPlateQueryHandler struct {
	db *gorm.DB
}

func NewCheckPlateQueryHandler(db *gorm.DB) CheckPlateQueryHandler {
	return CheckPlateQueryHandler{db: db}
}

func (h CheckPlateQueryHandler) Handle(ctx context.Context, query CheckPlateQuery) (CheckPlateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckPlateQueryResponse{}, err
	}
	if query.Plate() == "" {
		return CheckPlateQueryResponse{Found: false}, nil
	}

	scopeSQL, scopeArgs := scopeFilter(query.Scope(), "v.branch_id")
	args := append([]any{query.Plate()}, scopeArgs...)

	var (
		vehicleID, customerID uuid.UUID
		vehicle               VehicleSummary
		customer              CustomerSummary
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			v.id,
			v.plate_number,
			v.make,
			v.model,
			c.id,
			c.full_name,
			c.phone
		FROM vehicles v
		JOIN customers c ON c.id = v.customer_id
		WHERE v.plate_number = ? AND `+scopeSQL+`
		ORDER BY v.created_at DESC
		LIMIT 1
	`, args...).Row()

	err := row.Scan(
		&vehicleID,
		&vehicle.PlateNumber,
		&vehicle.Make,
		&vehicle.Model,
		&customerID,
		&customer.FullName,
		&customer.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckPlateQueryResponse{Found: false}, nil
	}
	if err != nil {
		return CheckPlateQueryResponse{}, err
	}

	if vehicle.ID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
		return CheckPlateQueryResponse{}, err
	}
	if customer.ID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return CheckPlateQueryResponse{}, err
	}

	return CheckPlateQueryResponse{Found: true, Customer: &customer, Vehicle: &vehicle}, nil
}
