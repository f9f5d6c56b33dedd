// Package errs provides standardized error types for the parcel logistics core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Generic error types cover common validation scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value lies outside its permitted range
//   - ObjectNotFoundError: an entity cannot be located
//
// Domain error kinds classify rejected logistics operations so callers can present
// actionable messages:
//   - RouteNotFoundError: no distance entry for a branch pair (configuration fault)
//   - InvalidTransitionError: illegal lifecycle status change
//   - CapacityExceededError: assignment would exceed a vehicle capability
//   - VehicleUnavailableError / DriverUnavailableError: resource already engaged
//   - ConsistencyViolationError: denormalized aggregate mismatch
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrCapacityExceeded) for errors.Is checks
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() for formatting and Unwrap() for error-chain support
//
// The core never retries internally: every error here describes a rejected mutation
// that left no partial state behind.
package errs
