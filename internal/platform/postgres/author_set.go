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

const (
	selectAuthors = `SELECT id, first_name, last_name FROM authors`

	selectAuthorByID = `SELECT id, first_name, last_name FROM authors WHERE id = $1`

	authorExists = `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`

	updateAuthor = `UPDATE authors SET first_name = $1, last_name = $2 WHERE id = $3`
)

// authorSet implements store.AuthorSet against the gateway's pool,
// staging mutations on the owning unit of work.
type authorSet struct {
	uow *unitOfWork
}

var _ store.AuthorSet = (*authorSet)(nil)

// All implements store.AuthorSet.All.
func (s *authorSet) All(ctx context.Context) ([]*domain.Author, error) {
	rows, err := s.uow.gateway.pool.Query(ctx, selectAuthors)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.FirstName, &author.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, &author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read authors: %w", err)
	}

	return authors, nil
}

// ByID implements store.AuthorSet.ByID.
func (s *authorSet) ByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}

	var author domain.Author
	err := s.uow.gateway.pool.QueryRow(ctx, selectAuthorByID, id).
		Scan(&author.ID, &author.FirstName, &author.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to query author: %w", err)
	}

	return &author, nil
}

// Exists implements store.AuthorSet.Exists.
func (s *authorSet) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("%w: author ID is empty", store.ErrInvalidID)
	}

	var exists bool
	if err := s.uow.gateway.pool.QueryRow(ctx, authorExists, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query author existence: %w", err)
	}

	return exists, nil
}

// StageUpdate implements store.AuthorSet.StageUpdate.
func (s *authorSet) StageUpdate(author *domain.Author) {
	s.uow.stage(updateAuthor, author.FirstName, author.LastName, author.ID)
}
