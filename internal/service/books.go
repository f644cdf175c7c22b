package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dnt-demos/library-api/internal/domain"
	"github.com/dnt-demos/library-api/internal/store"
)

// Books defines the book domain service.
type Books interface {
	// ListBooks returns every book belonging to the given author, each
	// with its Author relation loaded. Returns store.ErrInvalidID for a
	// nil author ID.
	ListBooks(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error)

	// GetBook returns the book scoped by both IDs together; a book ID
	// alone is not sufficient. The Author relation is loaded.
	// Returns store.ErrInvalidID for nil IDs and store.ErrBookNotFound
	// if absent in the author's scope.
	GetBook(ctx context.Context, authorID, bookID uuid.UUID) (*domain.Book, error)

	// AddBook stages a new book for insertion at the next commit.
	// Returns store.ErrInvalidEntity for a nil or invalid book.
	AddBook(book *domain.Book) error
}

// booksService is the production Books implementation, bound to one
// request-scoped unit of work.
type booksService struct {
	books store.BookSet
}

// NewBooks creates a Books service over the given unit of work.
func NewBooks(uow store.UnitOfWork) Books {
	return &booksService{books: uow.Books()}
}

func (s *booksService) ListBooks(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error) {
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}

	return s.books.ByAuthor(ctx, authorID)
}

func (s *booksService) GetBook(ctx context.Context, authorID, bookID uuid.UUID) (*domain.Book, error) {
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}
	if bookID == uuid.Nil {
		return nil, fmt.Errorf("%w: book ID is empty", store.ErrInvalidID)
	}

	return s.books.ByID(ctx, authorID, bookID)
}

func (s *booksService) AddBook(book *domain.Book) error {
	if book == nil {
		return fmt.Errorf("%w: book is nil", store.ErrInvalidEntity)
	}

	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.books.StageInsert(book)
	return nil
}
