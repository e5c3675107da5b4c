package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}

// recordBranch picks the branch new records are filed under: the preferred
// branch when it is visible, otherwise the scope's home branch.
func recordBranch(scope branch.Scope, preferred *kernel.UUID) (kernel.UUID, error) {
	if preferred != nil && scope.Contains(*preferred) {
		return *preferred, nil
	}
	if home, ok := scope.Home(); ok {
		return home, nil
	}
	return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause("branch", errors.New("request has no home branch"))
}

// upsertVehicle returns the branch's vehicle with the plate, moved to the
// customer if it belonged to someone else, or registers a new one.
func upsertVehicle(
	ctx context.Context,
	repo ports.VehicleRepository,
	branchID, customerID kernel.UUID,
	plate kernel.PlateNumber,
) (*vehicle.Vehicle, error) {
	existing, err := repo.FindByPlate(ctx, branch.NewScope(branchID), plate)
	switch {
	case err == nil:
		if existing.CustomerID().IsEqual(customerID) {
			return existing, nil
		}
		if err = existing.TransferTo(customerID); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case isNotFound(err):
		v, newErr := vehicle.NewVehicle(kernel.NewUUID(), customerID, branchID, plate)
		if newErr != nil {
			return nil, newErr
		}
		if err = repo.Add(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, err
	}
}

// serviceEstimate is the catalog view of a service selection.
type serviceEstimate struct {
	minutes int
	lines   []order.LineItem
	names   []string
}

// estimateServices sums the active service types and add-ons matching names
// and builds one line item per match.
func estimateServices(ctx context.Context, repo ports.CatalogRepository, names []string) (serviceEstimate, error) {
	if len(names) == 0 {
		return serviceEstimate{}, nil
	}

	types, err := repo.ServiceTypesByNames(ctx, names)
	if err != nil {
		return serviceEstimate{}, err
	}
	addons, err := repo.ServiceAddonsByNames(ctx, names)
	if err != nil {
		return serviceEstimate{}, err
	}

	est := serviceEstimate{minutes: catalog.TotalMinutes(types) + catalog.TotalMinutes(addons)}
	for _, t := range types {
		if !t.IsActive() {
			continue
		}
		line, lineErr := order.NewLineItem(order.ServiceLine, t.Name(), fmt.Sprintf("%d min", t.EstimatedMinutes()))
		if lineErr != nil {
			return serviceEstimate{}, lineErr
		}
		est.lines = append(est.lines, line)
		est.names = append(est.names, t.Name())
	}
	for _, a := range addons {
		if !a.IsActive() {
			continue
		}
		line, lineErr := order.NewLineItem(order.AddonLine, a.Name(), fmt.Sprintf("%d min", a.EstimatedMinutes()))
		if lineErr != nil {
			return serviceEstimate{}, lineErr
		}
		est.lines = append(est.lines, line)
		est.names = append(est.names, a.Name())
	}
	return est, nil
}

// defaultDescription is used when an order is created without one,
// e.g. "Sales Order".
func defaultDescription(t order.Type) string {
	s := string(t)
	if s == "" {
		return "Order"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Order"
}
