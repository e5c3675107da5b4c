package customer

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// Type is the kind of customer.
type Type string

const (
	Personal   Type = "personal"
	Company    Type = "company"
	Government Type = "government"
	NGO        Type = "ngo"
)

// PersonalSubtype distinguishes vehicle owners from drivers for personal customers.
type PersonalSubtype string

const (
	Owner  PersonalSubtype = "owner"
	Driver PersonalSubtype = "driver"
)

// ParseType accepts the lower-case wire names.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case Personal, Company, Government, NGO:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("customer_type", fmt.Errorf("%q is not a customer type", raw))
	}
}

// IsOrganizational reports whether the type requires organisation details.
func (t Type) IsOrganizational() bool {
	return t == Company || t == Government || t == NGO
}

// ParsePersonalSubtype accepts "owner" or "driver".
func ParsePersonalSubtype(raw string) (PersonalSubtype, error) {
	s := PersonalSubtype(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case Owner, Driver:
		return s, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("personal_subtype", fmt.Errorf("%q is not a personal subtype", raw))
	}
}

// Classification groups the type-dependent customer fields so the
// organisation/personal invariant is checked in one place.
type Classification struct {
	kind             Type
	personalSubtype  PersonalSubtype
	organizationName string
	taxNumber        string
}

// NewPersonalClassification classifies an individual.
func NewPersonalClassification(subtype PersonalSubtype) (Classification, error) {
	if subtype == "" {
		return Classification{}, errs.NewValueIsRequiredError("personal_subtype")
	}
	if _, err := ParsePersonalSubtype(string(subtype)); err != nil {
		return Classification{}, err
	}
	return Classification{kind: Personal, personalSubtype: subtype}, nil
}

// NewOrganizationalClassification classifies a company, government body or NGO.
func NewOrganizationalClassification(kind Type, organizationName, taxNumber string) (Classification, error) {
	if !kind.IsOrganizational() {
		return Classification{}, errs.NewValueIsInvalidErrorWithCause(
			"customer_type", fmt.Errorf("%q is not an organisational type", kind),
		)
	}

	organizationName = strings.TrimSpace(organizationName)
	taxNumber = strings.TrimSpace(taxNumber)
	if organizationName == "" {
		return Classification{}, errs.NewValueIsRequiredError("organization_name")
	}
	if taxNumber == "" {
		return Classification{}, errs.NewValueIsRequiredError("tax_number")
	}

	return Classification{kind: kind, organizationName: organizationName, taxNumber: taxNumber}, nil
}

// NewClassification dispatches on kind; fields that do not apply are ignored.
func NewClassification(kind Type, subtype PersonalSubtype, organizationName, taxNumber string) (Classification, error) {
	if kind == Personal {
		return NewPersonalClassification(subtype)
	}
	return NewOrganizationalClassification(kind, organizationName, taxNumber)
}

func (c Classification) Type() Type { return c.kind }

func (c Classification) PersonalSubtype() PersonalSubtype { return c.personalSubtype }

func (c Classification) OrganizationName() string { return c.organizationName }

func (c Classification) TaxNumber() string { return c.taxNumber }

// Validate rejects the zero value.
func (c Classification) Validate() error {
	if c.kind == "" {
		return errs.NewValueIsRequiredError("customer_type")
	}
	return nil
}
