package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dnt-demos/library-api/internal/api/middleware"
	"github.com/dnt-demos/library-api/internal/domain"
	"github.com/dnt-demos/library-api/internal/store"
)

// memoryStore is an in-memory stand-in for the database shared by the
// units of work a fakeGateway hands out. Staged mutations are applied on
// Save, mirroring the production commit semantics.
type memoryStore struct {
	authors map[uuid.UUID]*domain.Author
	books   map[uuid.UUID]*domain.Book
	saveErr error
	saves   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		authors: make(map[uuid.UUID]*domain.Author),
		books:   make(map[uuid.UUID]*domain.Book),
	}
}

func (m *memoryStore) addAuthor(firstName, lastName string) *domain.Author {
	author := &domain.Author{ID: uuid.New(), FirstName: firstName, LastName: lastName}
	m.authors[author.ID] = author
	return author
}

func (m *memoryStore) addBook(author *domain.Author, title, description string, pages *int) *domain.Book {
	book := &domain.Book{
		ID:            uuid.New(),
		Title:         title,
		Description:   description,
		AmountOfPages: pages,
		AuthorID:      author.ID,
	}
	m.books[book.ID] = book
	return book
}

// fakeGateway implements store.Gateway over a memoryStore.
type fakeGateway struct {
	store *memoryStore
}

func (g *fakeGateway) Begin() store.UnitOfWork {
	return &memUnitOfWork{store: g.store}
}

func (g *fakeGateway) Migrate(context.Context) error { return nil }
func (g *fakeGateway) Close()                        {}

// memUnitOfWork implements store.UnitOfWork with staged closures.
type memUnitOfWork struct {
	store  *memoryStore
	staged []func()
}

func (u *memUnitOfWork) Authors() store.AuthorSet { return &memAuthorSet{uow: u} }
func (u *memUnitOfWork) Books() store.BookSet     { return &memBookSet{uow: u} }

func (u *memUnitOfWork) Save(context.Context) error {
	if u.store.saveErr != nil {
		return u.store.saveErr
	}
	for _, apply := range u.staged {
		apply()
	}
	u.store.saves++
	u.staged = nil
	return nil
}

func (u *memUnitOfWork) Discard() { u.staged = nil }

type memAuthorSet struct {
	uow *memUnitOfWork
}

func (s *memAuthorSet) All(context.Context) ([]*domain.Author, error) {
	authors := make([]*domain.Author, 0, len(s.uow.store.authors))
	for _, author := range s.uow.store.authors {
		authors = append(authors, author)
	}
	return authors, nil
}

func (s *memAuthorSet) ByID(_ context.Context, id uuid.UUID) (*domain.Author, error) {
	author, ok := s.uow.store.authors[id]
	if !ok {
		return nil, store.ErrAuthorNotFound
	}
	// Hand out a copy so staged updates stay invisible until Save.
	copied := *author
	return &copied, nil
}

func (s *memAuthorSet) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.uow.store.authors[id]
	return ok, nil
}

func (s *memAuthorSet) StageUpdate(author *domain.Author) {
	updated := *author
	s.uow.staged = append(s.uow.staged, func() {
		s.uow.store.authors[updated.ID] = &updated
	})
}

type memBookSet struct {
	uow *memUnitOfWork
}

func (s *memBookSet) ByAuthor(_ context.Context, authorID uuid.UUID) ([]*domain.Book, error) {
	books := make([]*domain.Book, 0)
	for _, book := range s.uow.store.books {
		if book.AuthorID == authorID {
			books = append(books, s.withAuthor(book))
		}
	}
	return books, nil
}

func (s *memBookSet) ByID(_ context.Context, authorID, bookID uuid.UUID) (*domain.Book, error) {
	book, ok := s.uow.store.books[bookID]
	if !ok || book.AuthorID != authorID {
		return nil, store.ErrBookNotFound
	}
	return s.withAuthor(book), nil
}

func (s *memBookSet) StageInsert(book *domain.Book) {
	inserted := *book
	s.uow.staged = append(s.uow.staged, func() {
		s.uow.store.books[inserted.ID] = &inserted
	})
}

// withAuthor returns a copy with the Author relation loaded, the way the
// production queries join the authors table.
func (s *memBookSet) withAuthor(book *domain.Book) *domain.Book {
	copied := *book
	if author, ok := s.uow.store.authors[book.AuthorID]; ok {
		copied.Author = author
	}
	return &copied
}

const (
	testUsername = "DNT"
	testPassword = "123"
)

// newTestServer wires the full router over the fake gateway, with real
// authentication and negotiation middleware in place.
func newTestServer(t *testing.T, memStore *memoryStore) http.Handler {
	t.Helper()

	auth, err := middleware.NewBasicAuth(testUsername, testPassword, nil)
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		Authors: NewAuthorsHandler(&fakeGateway{store: memStore}, nil),
		Books:   NewBooksHandler(&fakeGateway{store: memStore}, nil),
		Docs:    NewDocsHandler(nil),
		Auth:    auth,
	})
}

// doRequest performs an authenticated request against the handler.
func doRequest(handler http.Handler, r *http.Request) *httptest.ResponseRecorder {
	r.SetBasicAuth(testUsername, testPassword)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}
