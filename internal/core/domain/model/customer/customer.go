package customer

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer owns vehicles and is billed for orders. Visit counters are touched
// once per order creation or reuse, never on a plain lookup.
type Customer struct {
	id             kernel.UUID
	branchID       kernel.UUID
	fullName       string
	phone          string
	classification Classification
	email          string
	address        string
	totalVisits    int
	lastVisit      *time.Time

	isConstructed bool
}

// NewCustomer creates a customer with zero visits.
func NewCustomer(
	id kernel.UUID,
	branchID kernel.UUID,
	fullName string,
	phone string,
	classification Classification,
) (*Customer, error) {
	c := &Customer{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setBranchID(branchID),
		c.setFullName(fullName),
		c.setPhone(phone),
		c.setClassification(classification),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// NewPlateCustomer synthesises a placeholder customer for a walk-in vehicle,
// to be completed later from the paperwork.
func NewPlateCustomer(id, branchID kernel.UUID, plate kernel.PlateNumber) (*Customer, error) {
	if err := plate.Validate(); err != nil {
		return nil, err
	}

	classification, err := NewPersonalClassification(Owner)
	if err != nil {
		return nil, err
	}
	return NewCustomer(id, branchID, "Plate "+plate.String(), "PLATE_"+plate.String(), classification)
}

// RestoreCustomer rebuilds a persisted customer including its counters.
func RestoreCustomer(
	id kernel.UUID,
	branchID kernel.UUID,
	fullName string,
	phone string,
	classification Classification,
	email string,
	address string,
	totalVisits int,
	lastVisit *time.Time,
) (*Customer, error) {
	c, err := NewCustomer(id, branchID, fullName, phone, classification)
	if err != nil {
		return nil, err
	}
	c.SetContact(email, address)
	c.totalVisits = totalVisits
	c.lastVisit = lastVisit
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID { return c.id }

func (c *Customer) BranchID() kernel.UUID { return c.branchID }

func (c *Customer) FullName() string { return c.fullName }

func (c *Customer) Phone() string { return c.phone }

func (c *Customer) Classification() Classification { return c.classification }

func (c *Customer) Email() string { return c.email }

func (c *Customer) Address() string { return c.address }

func (c *Customer) TotalVisits() int { return c.totalVisits }

func (c *Customer) LastVisit() *time.Time { return c.lastVisit }

// RecordVisit increments the visit counter and stamps the last visit.
func (c *Customer) RecordVisit(at time.Time) {
	c.totalVisits++
	c.lastVisit = &at
}

// UpdateProfile replaces the identifying fields, keeping the same invariants
// as the constructor. The customer is unchanged when validation fails.
func (c *Customer) UpdateProfile(fullName, phone string, classification Classification) error {
	updated := *c
	if err := errors.Join(
		updated.setFullName(fullName),
		updated.setPhone(phone),
		updated.setClassification(classification),
	); err != nil {
		return err
	}
	*c = updated
	return nil
}

// SetContact overwrites the optional contact fields. Blank values are kept blank.
func (c *Customer) SetContact(email, address string) {
	c.email = strings.TrimSpace(email)
	c.address = strings.TrimSpace(address)
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch", err)
	}
	c.branchID = branchID
	return nil
}

func (c *Customer) setFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errs.NewValueIsRequiredError("full_name")
	}
	c.fullName = fullName
	return nil
}

func (c *Customer) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setClassification(classification Classification) error {
	if err := classification.Validate(); err != nil {
		return err
	}
	c.classification = classification
	return nil
}
