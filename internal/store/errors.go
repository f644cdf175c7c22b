package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (ErrAuthorNotFound, ErrBookNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidID is returned when a caller passes a structurally invalid
	// (zero/nil) identifier to a store or service method. This is never
	// treated as a not-found condition.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEntity is returned when a nil or invalid entity is passed
	// to a staging method. Check the wrapped error for validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrPersistence is returned when a commit fails after the retry policy
	// is exhausted. The unit of work guarantees nothing was partially applied.
	ErrPersistence = errors.New("persistence failure")

	// Entity-specific "not found" errors

	// ErrAuthorNotFound indicates that the requested author does not exist.
	ErrAuthorNotFound = fmt.Errorf("%w: author", ErrNotFound)

	// ErrBookNotFound indicates that the requested book does not exist in
	// the scope of the given author.
	ErrBookNotFound = fmt.Errorf("%w: book", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
