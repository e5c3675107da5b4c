// Package catalogrepo reads the reference catalog: labour codes, service
// types, service add-ons and delay reasons.
package catalogrepo

import (
	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type LabourCodeDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"size:50;uniqueIndex"`
	Description string
	Category    string `gorm:"size:100;index"`
	ItemName    string `gorm:"size:200"`
	Brand       string `gorm:"size:100"`
	Quantity    int
	TireType    string `gorm:"size:20"`
	IsActive    bool
}

func (LabourCodeDTO) TableName() string {
	return "labour_codes"
}

// OfferingDTO holds the columns shared by service types and add-ons.
type OfferingDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"size:100;uniqueIndex"`
	EstimatedMinutes int
	IsActive         bool
}

type ServiceTypeDTO struct {
	OfferingDTO `gorm:"embedded"`
}

func (ServiceTypeDTO) TableName() string {
	return "service_types"
}

type ServiceAddonDTO struct {
	OfferingDTO `gorm:"embedded"`
}

func (ServiceAddonDTO) TableName() string {
	return "service_addons"
}

type DelayReasonCategoryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"size:100;uniqueIndex"`
	IsActive bool
}

func (DelayReasonCategoryDTO) TableName() string {
	return "delay_reason_categories"
}

type DelayReasonDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;index"`
	Text       string
	IsActive   bool
}

func (DelayReasonDTO) TableName() string {
	return "delay_reasons"
}

func (dto LabourCodeDTO) toDomain() (*catalog.LabourCode, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewLabourCode(id, dto.Code, catalog.LabourCodeDetails{
		Description: dto.Description,
		Category:    dto.Category,
		ItemName:    dto.ItemName,
		Brand:       dto.Brand,
		Quantity:    dto.Quantity,
		TireType:    dto.TireType,
	}, dto.IsActive)
}

func (dto ServiceTypeDTO) toDomain() (*catalog.ServiceType, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewServiceType(id, dto.Name, dto.EstimatedMinutes, dto.IsActive)
}

func (dto ServiceAddonDTO) toDomain() (*catalog.ServiceAddon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewServiceAddon(id, dto.Name, dto.EstimatedMinutes, dto.IsActive)
}

func (dto DelayReasonDTO) toDomain() (*catalog.DelayReason, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewDelayReason(id, categoryID, dto.Text, dto.IsActive)
}
