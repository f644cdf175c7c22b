package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dnt-demos/library-api/internal/api/shared"
	"github.com/dnt-demos/library-api/internal/domain"
	"github.com/dnt-demos/library-api/internal/mapping"
	"github.com/dnt-demos/library-api/internal/service"
	"github.com/dnt-demos/library-api/internal/store"
)

// Vendor media types selecting the alternate book shapes.
const (
	// MediaTypeBookWithAuthorName selects the single-field author name
	// response shape on single-book GETs.
	MediaTypeBookWithAuthorName = "application/vnd.library.bookwithconcatenatedauthorname+json"

	// MediaTypeBookCreationWithPages selects the creation shape carrying
	// a page count on book POSTs.
	MediaTypeBookCreationWithPages = "application/vnd.library.bookforcreationwithamountofpages+json"
)

// BooksHandler handles book-related HTTP requests. Every route first
// verifies that the parent author exists; book lookups are scoped by both
// IDs together.
type BooksHandler struct {
	gateway    store.Gateway
	newAuthors func(store.UnitOfWork) service.Authors
	newBooks   func(store.UnitOfWork) service.Books
	logger     *slog.Logger
}

// NewBooksHandler creates a new BooksHandler.
func NewBooksHandler(gateway store.Gateway, logger *slog.Logger) *BooksHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &BooksHandler{
		gateway:    gateway,
		newAuthors: service.NewAuthors,
		newBooks:   service.NewBooks,
		logger:     logger.With(slog.String("component", "books_handler")),
	}
}

// ListBooks handles GET /api/authors/{authorId}/books requests.
func (h *BooksHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	authorID, ok := parseIDParam(w, r, "authorId")
	if !ok {
		return
	}

	uow := h.gateway.Begin()
	defer uow.Discard()

	exists, err := h.newAuthors(uow).AuthorExists(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}
	if !exists {
		shared.RespondWithProblem(w, r, http.StatusNotFound, "Author not found")
		return
	}

	books, err := h.newBooks(uow).ListBooks(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	responses, err := mapping.BooksToResponses(books)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to map books", err)
		return
	}

	shared.Respond(w, r, http.StatusOK, responses)
}

// GetBook handles GET /api/authors/{authorId}/books/{bookId} requests.
// Clients asking for the concatenated-author-name media type get the
// alternate response shape.
func (h *BooksHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	authorID, ok := parseIDParam(w, r, "authorId")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(w, r, "bookId")
	if !ok {
		return
	}

	uow := h.gateway.Begin()
	defer uow.Discard()

	exists, err := h.newAuthors(uow).AuthorExists(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}
	if !exists {
		shared.RespondWithProblem(w, r, http.StatusNotFound, "Author not found")
		return
	}

	book, err := h.newBooks(uow).GetBook(r.Context(), authorID, bookID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	if shared.AcceptsMediaType(r, MediaTypeBookWithAuthorName) {
		response, err := mapping.BookToConcatenatedResponse(book)
		if err != nil {
			shared.RespondWithProblemAndLog(w, r,
				http.StatusInternalServerError, "Failed to map book", err)
			return
		}
		shared.Respond(w, r, http.StatusOK, response)
		return
	}

	response, err := mapping.BookToResponse(book)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to map book", err)
		return
	}

	shared.Respond(w, r, http.StatusOK, response)
}

// CreateBook handles POST /api/authors/{authorId}/books requests. The
// request content type selects the creation shape: plain JSON carries the
// base shape, the vendor media type additionally carries a page count.
// On success the Location header points at the single-book GET route.
func (h *BooksHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	authorID, ok := parseIDParam(w, r, "authorId")
	if !ok {
		return
	}

	book, ok := h.decodeCreation(w, r, authorID)
	if !ok {
		return
	}

	uow := h.gateway.Begin()
	defer uow.Discard()
	books := h.newBooks(uow)

	exists, err := h.newAuthors(uow).AuthorExists(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}
	if !exists {
		shared.RespondWithProblem(w, r, http.StatusNotFound, "Author not found")
		return
	}

	if err := books.AddBook(book); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	if err := uow.Save(r.Context()); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	// Read the committed book back with its author relation loaded so the
	// 201 body is identical to what a GET on the Location will return.
	created, err := books.GetBook(r.Context(), authorID, book.ID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	response, err := mapping.BookToResponse(created)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to map book", err)
		return
	}

	h.logger.Debug("book created",
		slog.String("author_id", authorID.String()),
		slog.String("book_id", book.ID.String()))

	w.Header().Set("Location",
		fmt.Sprintf("/api/authors/%s/books/%s", authorID, book.ID))
	shared.Respond(w, r, http.StatusCreated, response)
}

// decodeCreation decodes and validates the creation body according to the
// request content type, returning the new entity with its ID assigned.
func (h *BooksHandler) decodeCreation(
	w http.ResponseWriter,
	r *http.Request,
	authorID uuid.UUID,
) (*domain.Book, bool) {
	contentType := r.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	if strings.EqualFold(contentType, MediaTypeBookCreationWithPages) {
		var dto mapping.BookForCreationWithAmountOfPages
		if err := shared.DecodeJSON(r, &dto); err != nil {
			shared.RespondWithProblemAndLog(w, r,
				http.StatusBadRequest, "Request body could not be parsed", err)
			return nil, false
		}
		if !h.validateCreation(w, r, dto) {
			return nil, false
		}

		book, err := mapping.BookFromCreationWithPages(authorID, dto)
		if err != nil {
			shared.RespondWithProblemAndLog(w, r,
				http.StatusInternalServerError, "Failed to construct book", err)
			return nil, false
		}
		return book, true
	}

	var dto mapping.BookForCreation
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusBadRequest, "Request body could not be parsed", err)
		return nil, false
	}
	if !h.validateCreation(w, r, dto) {
		return nil, false
	}

	book, err := mapping.BookFromCreation(authorID, dto)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to construct book", err)
		return nil, false
	}
	return book, true
}

// validateCreation runs struct validation and writes the 422 body on
// failure.
func (h *BooksHandler) validateCreation(w http.ResponseWriter, r *http.Request, dto any) bool {
	fieldErrors, err := shared.ValidateStruct(dto)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to validate request", err)
		return false
	}
	if len(fieldErrors) > 0 {
		shared.RespondWithValidationProblem(w, r, fieldErrors)
		return false
	}
	return true
}
