package orderrepo

import (
	"context"
	"errors"
	"time"

	"tracker/internal/adapters/out/postgres/scoping"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit("LineItems").Create(&dto).Error; err != nil {
		return err
	}
	if err := insertLines(db, dto.LineItems); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column, so cleared optional fields are cleared in the
// table too, and replaces the line items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID", "LineItems").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}
	if err := insertLines(db, dto.LineItems); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order visible in scope.
func (r *GormOrderRepository) Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.query(ctx).
		Scopes(scoping.Branches(scope, "branch_id")).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) FindLatestByVehicle(
	ctx context.Context, vehicleID kernel.UUID, statuses ...order.Status,
) (*order.Order, error) {
	return r.findOne(ctx, "created_at DESC", vehicleID, statuses)
}

func (r *GormOrderRepository) FindLatestStartedByVehicle(
	ctx context.Context, vehicleID kernel.UUID, statuses ...order.Status,
) (*order.Order, error) {
	return r.findOne(ctx, "started_at DESC, created_at DESC", vehicleID, statuses)
}

func (r *GormOrderRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.findAll(ctx, "status = ? AND created_at < ?", int(order.Created), cutoff)
}

func (r *GormOrderRepository) ListInProgressStartedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.findAll(ctx, "status = ? AND started_at < ?", int(order.InProgress), cutoff)
}

func (r *GormOrderRepository) findOne(
	ctx context.Context, orderBy string, vehicleID kernel.UUID, statuses []order.Status,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.query(ctx).
		Where("vehicle_id = ? AND status IN ?", vehicleID.Bytes(), statusCodes(statuses)).
		Order(orderBy).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle_order", vehicleID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) findAll(ctx context.Context, where string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.query(ctx).Where(where, args...).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func insertLines(db *gorm.DB, lines []LineItemDTO) error {
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func statusCodes(statuses []order.Status) []int {
	codes := make([]int, 0, len(statuses))
	for _, s := range statuses {
		codes = append(codes, int(s))
	}
	return codes
}
