package branchrepo

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements ports.BranchRepository using GORM.
type GormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func (r *GormBranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListChildren returns the direct sub-branches of parentID ordered by code.
func (r *GormBranchRepository) ListChildren(ctx context.Context, parentID kernel.UUID) ([]*branch.Branch, error) {
	var dtos []BranchDTO
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID.Bytes()).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, nil
}

func (r *GormBranchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&BranchDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("branch", id.String())
	}
	return nil
}
