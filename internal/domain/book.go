package domain

import (
	"github.com/google/uuid"
)

// maxTitleLength and maxDescriptionLength bound the corresponding
// varchar columns in the schema.
const (
	maxTitleLength       = 150
	maxDescriptionLength = 500
)

// Book represents a single book written by an Author.
// AuthorID is a required reference to an existing Author; the
// Author field is the back-reference, populated only when the
// book is fetched with its author relation loaded.
type Book struct {
	ID            uuid.UUID
	Title         string
	Description   string
	AmountOfPages *int
	AuthorID      uuid.UUID
	Author        *Author
}

// NewBook creates a new Book for the given author with a generated ID.
// amountOfPages may be nil when the page count is unknown.
// Returns an error if validation fails.
func NewBook(authorID uuid.UUID, title, description string, amountOfPages *int) (*Book, error) {
	book := &Book{
		ID:            uuid.New(),
		Title:         title,
		Description:   description,
		AmountOfPages: amountOfPages,
		AuthorID:      authorID,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBookID
	}

	if b.AuthorID == uuid.Nil {
		return ErrEmptyAuthorID
	}

	if b.Title == "" {
		return ErrEmptyTitle
	}

	if len(b.Title) > maxTitleLength || len(b.Description) > maxDescriptionLength {
		return ErrNameTooLong
	}

	return nil
}

// AuthorLoaded reports whether the Author relation was populated
// when the book was fetched. Mappings that derive author fields
// must check this before reaching through the relation.
func (b *Book) AuthorLoaded() bool {
	return b.Author != nil
}
