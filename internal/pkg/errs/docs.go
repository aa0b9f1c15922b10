// Package errs provides standardized error types for the order management
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateTransitionError: For when a status change breaks the state machine
//   - InvariantViolationError: For when an internal domain invariant is broken
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The taxonomy maps directly onto the HTTP surface: ValueIs* errors are
// client errors, ObjectNotFoundError is an absent resource,
// InvalidStateTransitionError is a conflict, and InvariantViolationError is
// an internal defect.
package errs
