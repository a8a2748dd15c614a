// Package errs provides the error types shared by the maintenance service.
//
// Each error type follows the same pattern: a sentinel variable, a struct
// carrying the details, constructors with and without a cause, and an
// Unwrap that exposes both the sentinel and the cause to errors.Is.
//
// Kinds:
//   - ObjectNotFoundError: a referenced entity is absent
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: validation failures
//   - InvalidStateError: the operation is not legal from the current status
//   - ForbiddenError: the actor's role or identity does not allow the operation
//   - ConflictError: a concurrent writer or a unique constraint won the race
//   - UnavailableError: the store failed or a retry budget ran out
//
// KindOf maps any wrapped error to one of these kinds.
package errs
