package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dnt-demos/library-api/internal/domain"
	"github.com/dnt-demos/library-api/internal/store"
)

// Book queries join the authors table so that the Author relation is
// always loaded; the author-derived mappings depend on it.
const (
	selectBooksByAuthor = `
		SELECT b.id, b.title, b.description, b.amount_of_pages, b.author_id,
		       a.id, a.first_name, a.last_name
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.author_id = $1`

	selectBookByID = selectBooksByAuthor + ` AND b.id = $2`

	insertBook = `
		INSERT INTO books (id, title, description, amount_of_pages, author_id)
		VALUES ($1, $2, $3, $4, $5)`
)

// bookSet implements store.BookSet against the gateway's pool, staging
// mutations on the owning unit of work.
type bookSet struct {
	uow *unitOfWork
}

var _ store.BookSet = (*bookSet)(nil)

// ByAuthor implements store.BookSet.ByAuthor.
func (s *bookSet) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error) {
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}

	rows, err := s.uow.gateway.pool.Query(ctx, selectBooksByAuthor, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	return books, nil
}

// ByID implements store.BookSet.ByID. The lookup is scoped by both IDs
// together; a book ID belonging to a different author is not found.
func (s *bookSet) ByID(ctx context.Context, authorID, bookID uuid.UUID) (*domain.Book, error) {
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}
	if bookID == uuid.Nil {
		return nil, fmt.Errorf("%w: book ID is empty", store.ErrInvalidID)
	}

	rows, err := s.uow.gateway.pool.Query(ctx, selectBookByID, authorID, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query book: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read book: %w", err)
		}
		return nil, store.ErrBookNotFound
	}

	return scanBook(rows)
}

// StageInsert implements store.BookSet.StageInsert.
func (s *bookSet) StageInsert(book *domain.Book) {
	s.uow.stage(insertBook,
		book.ID, book.Title, book.Description, book.AmountOfPages, book.AuthorID)
}

// scanBook reads one joined book row including its author.
func scanBook(rows pgx.Rows) (*domain.Book, error) {
	var (
		book   domain.Book
		author domain.Author
	)

	err := rows.Scan(
		&book.ID, &book.Title, &book.Description, &book.AmountOfPages, &book.AuthorID,
		&author.ID, &author.FirstName, &author.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}

	book.Author = &author
	return &book, nil
}
