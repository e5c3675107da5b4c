// Package kernel provides the value objects shared by every aggregate of the
// service-shop tracker.
//
// The package includes:
//   - UUID: identifier for branches, customers, vehicles, orders and catalog entries
//   - PlateNumber: a trimmed, upper-cased vehicle registration
//
// Zero values of both types are invalid and fail Validate, so aggregates can
// detect fields that were never set through a constructor.
package kernel
