// Package branchrepo persists the branch hierarchy.
package branchrepo

import (
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BranchDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"size:100"`
	Code     string     `gorm:"size:20;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	IsActive bool
}

func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(b *branch.Branch) BranchDTO {
	dto := BranchDTO{
		ID:       b.ID().Bytes(),
		Name:     b.Name(),
		Code:     b.Code(),
		IsActive: b.IsActive(),
	}
	if parentID := b.ParentID(); parentID != nil {
		raw := parentID.Bytes()
		dto.ParentID = &raw
	}
	return dto
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		parent, err := kernel.UUIDFromBytes(dto.ParentID[:])
		if err != nil {
			return nil, err
		}
		parentID = &parent
	}

	return branch.RestoreBranch(id, dto.Name, dto.Code, parentID, dto.IsActive)
}
