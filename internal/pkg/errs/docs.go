// Package errs provides standardized error types for the order workflow
// service. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package maps the service's error taxonomy onto concrete types:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures,
//     rejected before any state mutation (400 class)
//   - ObjectNotFoundError: referenced order, token, or profile is absent
//     (404 class, no retry)
//   - PersistenceError: the record store is unavailable; retryable by the
//     caller (500 class)
//   - TokenMismatchError: a step-completion signal carried a stale or
//     unknown resumption token; logged and ignored, no state change
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification
package errs
