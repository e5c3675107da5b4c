package customerrepo

import (
	"context"
	"errors"

	"tracker/internal/adapters/out/postgres/scoping"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID().String())
	}
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	err := r.db.WithContext(ctx).
		Scopes(scoping.Branches(scope, "branch_id")).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// FindByNameAndPhone matches the name case-insensitively and the phone exactly.
func (r *GormCustomerRepository) FindByNameAndPhone(
	ctx context.Context, branchID kernel.UUID, fullName, phone string,
) (*customer.Customer, error) {
	var dto CustomerDTO
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND LOWER(full_name) = LOWER(?) AND phone = ?", branchID.Bytes(), fullName, phone).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", fullName)
		}
		return nil, err
	}
	return toDomain(dto)
}
