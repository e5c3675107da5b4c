package inventoryrepo

import (
	"context"
	"errors"
	"strings"

	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory_item", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// FindByNameAndBrand takes a row lock so concurrent adjustments of the same
// item serialise. An empty brand matches items without a brand.
func (r *GormInventoryRepository) FindByNameAndBrand(ctx context.Context, name, brand string) (*inventory.Item, error) {
	name = strings.TrimSpace(name)
	brand = strings.TrimSpace(brand)

	var dto ItemDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("LOWER(name) = LOWER(?) AND LOWER(brand) = LOWER(?)", name, brand).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory_item", strings.TrimSpace(name+" "+brand))
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("inventory_item", item.ID().String())
	}
	return nil
}
