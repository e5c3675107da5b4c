package catalog

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// Offering is a selectable unit of work with an estimated duration.
type Offering struct {
	id               kernel.UUID
	name             string
	estimatedMinutes int
	isActive         bool
}

// ServiceType is a primary service such as "Oil Change".
type ServiceType struct{ Offering }

// ServiceAddon is an extra performed alongside a service or sale, such as tyre fitting.
type ServiceAddon struct{ Offering }

func newOffering(id kernel.UUID, name string, estimatedMinutes int, isActive bool) (Offering, error) {
	name = strings.TrimSpace(name)

	var nameErr, minutesErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if estimatedMinutes < 0 {
		minutesErr = errs.NewValueIsOutOfRangeError("estimated_minutes", estimatedMinutes, 0, nil)
	}
	if err := errors.Join(id.Validate(), nameErr, minutesErr); err != nil {
		return Offering{}, err
	}

	return Offering{id: id, name: name, estimatedMinutes: estimatedMinutes, isActive: isActive}, nil
}

func NewServiceType(id kernel.UUID, name string, estimatedMinutes int, isActive bool) (*ServiceType, error) {
	o, err := newOffering(id, name, estimatedMinutes, isActive)
	if err != nil {
		return nil, err
	}
	return &ServiceType{Offering: o}, nil
}

func NewServiceAddon(id kernel.UUID, name string, estimatedMinutes int, isActive bool) (*ServiceAddon, error) {
	o, err := newOffering(id, name, estimatedMinutes, isActive)
	if err != nil {
		return nil, err
	}
	return &ServiceAddon{Offering: o}, nil
}

func (o Offering) ID() kernel.UUID { return o.id }

func (o Offering) Name() string { return o.name }

func (o Offering) EstimatedMinutes() int { return o.estimatedMinutes }

func (o Offering) IsActive() bool { return o.isActive }

type estimated interface {
	EstimatedMinutes() int
	IsActive() bool
}

// TotalMinutes sums the estimates of the active offerings.
func TotalMinutes[T estimated](offerings []T) int {
	total := 0
	for _, o := range offerings {
		if o.IsActive() {
			total += o.EstimatedMinutes()
		}
	}
	return total
}
