package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnt-demos/library-api/internal/domain"
)

func TestStageAccumulatesInOrder(t *testing.T) {
	uow := &unitOfWork{}

	uow.stage("first", 1)
	uow.stage("second", 2, 3)

	require.Len(t, uow.staged, 2)
	assert.Equal(t, "first", uow.staged[0].sql)
	assert.Equal(t, []any{1}, uow.staged[0].args)
	assert.Equal(t, "second", uow.staged[1].sql)
	assert.Equal(t, []any{2, 3}, uow.staged[1].args)
}

func TestStageUpdateBuildsAuthorCommand(t *testing.T) {
	uow := &unitOfWork{}
	set := &authorSet{uow: uow}

	author := &domain.Author{ID: uuid.New(), FirstName: "Eric", LastName: "Blair"}
	set.StageUpdate(author)

	require.Len(t, uow.staged, 1)
	assert.Equal(t, updateAuthor, uow.staged[0].sql)
	assert.Equal(t, []any{"Eric", "Blair", author.ID}, uow.staged[0].args)
}

func TestStageInsertBuildsBookCommand(t *testing.T) {
	uow := &unitOfWork{}
	set := &bookSet{uow: uow}

	pages := 328
	book := &domain.Book{
		ID:            uuid.New(),
		Title:         "1984",
		Description:   "A dystopian novel.",
		AmountOfPages: &pages,
		AuthorID:      uuid.New(),
	}
	set.StageInsert(book)

	require.Len(t, uow.staged, 1)
	assert.Equal(t, insertBook, uow.staged[0].sql)
	assert.Equal(t,
		[]any{book.ID, "1984", "A dystopian novel.", &pages, book.AuthorID},
		uow.staged[0].args)
}

func TestSaveWithNothingStaged(t *testing.T) {
	// An empty unit of work commits nothing and needs no connection.
	uow := &unitOfWork{}

	assert.NoError(t, uow.Save(context.Background()))
}

func TestDiscardDropsStagedCommands(t *testing.T) {
	uow := &unitOfWork{}
	uow.stage("anything", 1)

	uow.Discard()

	assert.Empty(t, uow.staged)
	assert.NoError(t, uow.Save(context.Background()), "a discarded unit saves nothing")
}

func TestIsTransient(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"closed connection", sql.ErrConnDone, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, true},
		{"connection exception", &pgconn.PgError{Code: "08006"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTransient(tc.err))
		})
	}
}
