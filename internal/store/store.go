// Package store provides abstractions for data persistence. The concrete
// PostgreSQL implementation lives in internal/platform/postgres.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/dnt-demos/library-api/internal/domain"
)

// Gateway is the entry point to the persistence layer. It hands out
// request-scoped units of work and owns schema migration at startup.
type Gateway interface {
	// Begin returns a new, empty unit of work. Each HTTP request gets its
	// own unit; nothing is shared between them except the database itself.
	Begin() UnitOfWork

	// Migrate applies all pending schema migrations. It is idempotent and
	// safe to call on every process start.
	Migrate(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close()
}

// UnitOfWork batches entity mutations staged during one request and commits
// them atomically. Reads go straight to the store; writes accumulate until
// Save replays them inside a single transaction.
type UnitOfWork interface {
	// Authors returns the typed record set for Author entities.
	Authors() AuthorSet

	// Books returns the typed record set for Book entities.
	Books() BookSet

	// Save commits all staged mutations in one transaction. On transient
	// failure the commit is retried per the gateway's retry policy; once
	// retries are exhausted it returns an error wrapping ErrPersistence.
	// Nothing is partially applied on failure.
	Save(ctx context.Context) error

	// Discard drops all staged mutations without touching the store.
	// A unit of work that is never saved has no effect.
	Discard()
}

// AuthorSet is the typed, queryable, mutable collection of Author entities.
type AuthorSet interface {
	// All returns every author, in store-determined order.
	All(ctx context.Context) ([]*domain.Author, error)

	// ByID returns the author with the given ID.
	// Returns ErrInvalidID for a nil ID and ErrAuthorNotFound if absent.
	ByID(ctx context.Context, id uuid.UUID) (*domain.Author, error)

	// Exists reports whether an author with the given ID exists.
	// Returns ErrInvalidID for a nil ID.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// StageUpdate records the mutated author for the next Save. The entity
	// is written as a full replace of its first and last name.
	StageUpdate(author *domain.Author)
}

// BookSet is the typed, queryable, mutable collection of Book entities.
// All queries eagerly load the Author relation so that author-derived
// mappings are total over their results.
type BookSet interface {
	// ByAuthor returns every book belonging to the given author, each with
	// its Author relation loaded. Returns ErrInvalidID for a nil ID.
	ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error)

	// ByID returns the book with the given ID scoped to the given author;
	// a book ID alone is not sufficient. The Author relation is loaded.
	// Returns ErrInvalidID for nil IDs and ErrBookNotFound if absent.
	ByID(ctx context.Context, authorID, bookID uuid.UUID) (*domain.Book, error)

	// StageInsert records a new book for insertion at the next Save.
	StageInsert(book *domain.Book)
}
