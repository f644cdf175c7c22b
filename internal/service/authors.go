// Package service contains the domain services sitting between the HTTP
// handlers and the persistence gateway. Services validate identifiers,
// query through the unit of work's record sets and stage mutations; the
// handler owns the final Save.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dnt-demos/library-api/internal/domain"
	"github.com/dnt-demos/library-api/internal/store"
)

// Authors defines the author domain service.
type Authors interface {
	// AuthorExists reports whether an author with the given ID exists.
	// Returns store.ErrInvalidID for a nil ID, never a silent false.
	AuthorExists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListAuthors returns all authors in store-determined order.
	ListAuthors(ctx context.Context) ([]*domain.Author, error)

	// GetAuthor returns the author with the given ID.
	// Returns store.ErrInvalidID for a nil ID and store.ErrAuthorNotFound
	// if the author does not exist.
	GetAuthor(ctx context.Context, id uuid.UUID) (*domain.Author, error)

	// UpdateAuthor stages the mutated author for the next commit. The
	// mutation itself already happened via mapping onto the entity; this
	// call makes the staged write explicit since there is no automatic
	// change tracker.
	UpdateAuthor(author *domain.Author) error
}

// authorsService is the production Authors implementation, bound to one
// request-scoped unit of work.
type authorsService struct {
	authors store.AuthorSet
}

// NewAuthors creates an Authors service over the given unit of work.
func NewAuthors(uow store.UnitOfWork) Authors {
	return &authorsService{authors: uow.Authors()}
}

func (s *authorsService) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}

	return s.authors.Exists(ctx, id)
}

func (s *authorsService) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.authors.All(ctx)
}

func (s *authorsService) GetAuthor(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}

	return s.authors.ByID(ctx, id)
}

func (s *authorsService) UpdateAuthor(author *domain.Author) error {
	if author == nil {
		return fmt.Errorf("%w: author is nil", store.ErrInvalidEntity)
	}

	if err := author.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.authors.StageUpdate(author)
	return nil
}
