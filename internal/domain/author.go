package domain

import (
	"github.com/google/uuid"
)

// maxNameLength bounds author first and last names, matching the
// varchar(150) columns in the schema.
const maxNameLength = 150

// Author represents a writer with a collection of books.
// The Books slice is populated only when the author is fetched
// together with its books; a nil slice means the relation was
// not loaded, not that the author has no books.
type Author struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Books     []*Book
}

// NewAuthor creates a new Author with a generated ID.
// Returns an error if validation fails.
func NewAuthor(firstName, lastName string) (*Author, error) {
	author := &Author{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}

	return author, nil
}

// Validate checks if the Author has valid data.
// Returns an error if any field fails validation.
func (a *Author) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAuthorID
	}

	if a.FirstName == "" {
		return ErrEmptyFirstName
	}

	if a.LastName == "" {
		return ErrEmptyLastName
	}

	if len(a.FirstName) > maxNameLength || len(a.LastName) > maxNameLength {
		return ErrNameTooLong
	}

	return nil
}
