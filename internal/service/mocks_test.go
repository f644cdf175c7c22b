package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dnt-demos/library-api/internal/domain"
	"github.com/dnt-demos/library-api/internal/store"
)

// fakeUnitOfWork is a test double for store.UnitOfWork handing out the
// configured record sets and counting Save/Discard calls.
type fakeUnitOfWork struct {
	authors   *fakeAuthorSet
	books     *fakeBookSet
	saveErr   error
	saved     int
	discarded int
}

func (f *fakeUnitOfWork) Authors() store.AuthorSet { return f.authors }
func (f *fakeUnitOfWork) Books() store.BookSet     { return f.books }

func (f *fakeUnitOfWork) Save(ctx context.Context) error {
	f.saved++
	return f.saveErr
}

func (f *fakeUnitOfWork) Discard() { f.discarded++ }

// fakeAuthorSet is a function-field test double for store.AuthorSet.
// Unset fields panic, keeping tests honest about what they exercise.
type fakeAuthorSet struct {
	allFn    func(ctx context.Context) ([]*domain.Author, error)
	byIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	existsFn func(ctx context.Context, id uuid.UUID) (bool, error)
	staged   []*domain.Author
}

func (f *fakeAuthorSet) All(ctx context.Context) ([]*domain.Author, error) {
	return f.allFn(ctx)
}

func (f *fakeAuthorSet) ByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	return f.byIDFn(ctx, id)
}

func (f *fakeAuthorSet) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.existsFn(ctx, id)
}

func (f *fakeAuthorSet) StageUpdate(author *domain.Author) {
	f.staged = append(f.staged, author)
}

// fakeBookSet is a function-field test double for store.BookSet.
type fakeBookSet struct {
	byAuthorFn func(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error)
	byIDFn     func(ctx context.Context, authorID, bookID uuid.UUID) (*domain.Book, error)
	staged     []*domain.Book
}

func (f *fakeBookSet) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error) {
	return f.byAuthorFn(ctx, authorID)
}

func (f *fakeBookSet) ByID(ctx context.Context, authorID, bookID uuid.UUID) (*domain.Book, error) {
	return f.byIDFn(ctx, authorID, bookID)
}

func (f *fakeBookSet) StageInsert(book *domain.Book) {
	f.staged = append(f.staged, book)
}
