// Package errs provides standardized error types for the order tracking service.
// Every type follows the same pattern so callers can classify failures with
// errors.Is against a sentinel while still getting a descriptive message:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type carrying the error details and an optional Cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The types map onto the failure taxonomy exposed to API callers:
//   - ObjectNotFoundError: the requested order does not exist
//   - ValueIsInvalidError / ValueIsRequiredError / ValueIsOutOfRangeError: bad input
//   - InternalError: the order store or another collaborator failed
package errs
