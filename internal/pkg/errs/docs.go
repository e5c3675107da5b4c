// Package errs provides standardized error types for the tracker application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found or is outside the caller's branch scope
//   - InvalidTransitionError: For order status changes the lifecycle does not allow
//   - AdjustmentError: For stock adjustments that could not be applied
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The three validation errors (required, invalid, out of range) together form the
// ValidationError class; IsValidation reports membership.
package errs
