// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyAuthorID is returned when an author ID is the zero UUID.
	ErrEmptyAuthorID = errors.New("author ID cannot be empty")

	// ErrEmptyBookID is returned when a book ID is the zero UUID.
	ErrEmptyBookID = errors.New("book ID cannot be empty")

	// ErrEmptyFirstName is returned when an author's first name is missing.
	ErrEmptyFirstName = errors.New("first name cannot be empty")

	// ErrEmptyLastName is returned when an author's last name is missing.
	ErrEmptyLastName = errors.New("last name cannot be empty")

	// ErrNameTooLong is returned when a name exceeds the 150 character bound.
	ErrNameTooLong = errors.New("name must be at most 150 characters long")

	// ErrEmptyTitle is returned when a book title is missing.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrAuthorNotLoaded is returned by mappings that derive author fields
	// from a Book whose Author relation was not eagerly loaded.
	ErrAuthorNotLoaded = errors.New("author relation not loaded")
)
