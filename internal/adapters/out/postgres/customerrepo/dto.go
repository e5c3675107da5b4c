// Package customerrepo persists customers.
package customerrepo

import (
	"time"

	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO is the customers table. Name and phone are unique per branch.
type CustomerDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID         uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_customers_branch_name_phone,priority:1"`
	FullName         string    `gorm:"size:200;uniqueIndex:idx_customers_branch_name_phone,priority:2"`
	Phone            string    `gorm:"size:50;uniqueIndex:idx_customers_branch_name_phone,priority:3"`
	Email            string    `gorm:"size:200"`
	Address          string
	CustomerType     string `gorm:"size:20"`
	PersonalSubtype  string `gorm:"size:20"`
	OrganizationName string `gorm:"size:200"`
	TaxNumber        string `gorm:"size:50"`
	TotalVisits      int
	LastVisit        *time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	classification := c.Classification()
	return CustomerDTO{
		ID:               c.ID().Bytes(),
		BranchID:         c.BranchID().Bytes(),
		FullName:         c.FullName(),
		Phone:            c.Phone(),
		Email:            c.Email(),
		Address:          c.Address(),
		CustomerType:     string(classification.Type()),
		PersonalSubtype:  string(classification.PersonalSubtype()),
		OrganizationName: classification.OrganizationName(),
		TaxNumber:        classification.TaxNumber(),
		TotalVisits:      c.TotalVisits(),
		LastVisit:        c.LastVisit(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	classification, err := customer.NewClassification(
		customer.Type(dto.CustomerType),
		customer.PersonalSubtype(dto.PersonalSubtype),
		dto.OrganizationName,
		dto.TaxNumber,
	)
	if err != nil {
		return nil, err
	}

	var lastVisit *time.Time
	if dto.LastVisit != nil {
		utc := dto.LastVisit.UTC()
		lastVisit = &utc
	}

	return customer.RestoreCustomer(
		id, branchID, dto.FullName, dto.Phone, classification,
		dto.Email, dto.Address, dto.TotalVisits, lastVisit,
	)
}
