// Package errs provides the typed errors shared by every layer of the pharmacy
// delivery service.
//
// Each error kind pairs a sentinel (for errors.Is checks) with a struct that
// carries the details of the failure:
//   - ObjectNotFoundError: a requested entity does not exist (NotFound)
//   - ForbiddenError: the acting user lacks the role or ownership for an action
//   - ConflictError: a state transition or business precondition does not hold
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - VersionIsInvalidError: a stale optimistic-lock version was written
//
// Constructors come in two flavours, with and without a cause, and every struct
// unwraps to its sentinel so callers can classify errors without type switches.
// The HTTP adapter maps the sentinels onto status codes.
package errs
