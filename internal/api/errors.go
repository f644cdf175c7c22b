// Package api provides the HTTP handlers for the Library API.
package api

import (
	"errors"
	"net/http"

	"github.com/dnt-demos/library-api/internal/jsonpatch"
	"github.com/dnt-demos/library-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Invalid identifiers are a caller error (400), never a not-found;
// persistence failures after retries are a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, jsonpatch.ErrInvalidPatch):
		return http.StatusUnprocessableEntity

	case errors.Is(err, store.ErrPersistence):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// SafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal details stay in the logs.
func SafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrAuthorNotFound):
		return "Author not found"

	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, jsonpatch.ErrInvalidPatch):
		return "The patch document could not be applied"

	case errors.Is(err, store.ErrPersistence):
		return "Failed to save changes"

	default:
		return "An unexpected error occurred"
	}
}
