package catalogrepo

import (
	"context"
	"errors"
	"strings"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
// Inactive entries are returned too; callers decide what inactive means.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetLabourCode(ctx context.Context, id kernel.UUID) (*catalog.LabourCode, error) {
	var dto LabourCodeDTO
	if err := r.first(ctx, &dto, id, "labour_code"); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (r *GormCatalogRepository) GetDelayReason(ctx context.Context, id kernel.UUID) (*catalog.DelayReason, error) {
	var dto DelayReasonDTO
	if err := r.first(ctx, &dto, id, "delay_reason"); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (r *GormCatalogRepository) ServiceTypesByNames(ctx context.Context, names []string) ([]*catalog.ServiceType, error) {
	var dtos []ServiceTypeDTO
	if err := r.byNames(ctx, &dtos, names); err != nil {
		return nil, err
	}

	types := make([]*catalog.ServiceType, 0, len(dtos))
	for _, dto := range dtos {
		t, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (r *GormCatalogRepository) ServiceAddonsByNames(ctx context.Context, names []string) ([]*catalog.ServiceAddon, error) {
	var dtos []ServiceAddonDTO
	if err := r.byNames(ctx, &dtos, names); err != nil {
		return nil, err
	}

	addons := make([]*catalog.ServiceAddon, 0, len(dtos))
	for _, dto := range dtos {
		a, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	return addons, nil
}

func (r *GormCatalogRepository) first(ctx context.Context, dest any, id kernel.UUID, name string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).First(dest, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(name, id.String())
	}
	return err
}

func (r *GormCatalogRepository) byNames(ctx context.Context, dest any, names []string) error {
	lowered := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			lowered = append(lowered, name)
		}
	}
	if len(lowered) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("LOWER(name) IN ?", lowered).Order("name").Find(dest).Error
}
