package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dnt-demos/library-api/internal/api/shared"
	"github.com/dnt-demos/library-api/internal/jsonpatch"
	"github.com/dnt-demos/library-api/internal/mapping"
	"github.com/dnt-demos/library-api/internal/service"
	"github.com/dnt-demos/library-api/internal/store"
)

// AuthorsHandler handles author-related HTTP requests. Each request gets
// its own unit of work; mutating requests commit it exactly once at the
// end, read-only requests simply drop it.
type AuthorsHandler struct {
	gateway    store.Gateway
	newAuthors func(store.UnitOfWork) service.Authors
	logger     *slog.Logger
}

// NewAuthorsHandler creates a new AuthorsHandler.
func NewAuthorsHandler(gateway store.Gateway, logger *slog.Logger) *AuthorsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorsHandler{
		gateway:    gateway,
		newAuthors: service.NewAuthors,
		logger:     logger.With(slog.String("component", "authors_handler")),
	}
}

// ListAuthors handles GET /api/authors requests.
func (h *AuthorsHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	uow := h.gateway.Begin()
	defer uow.Discard()

	authors, err := h.newAuthors(uow).ListAuthors(r.Context())
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	shared.Respond(w, r, http.StatusOK, mapping.AuthorsToResponses(authors))
}

// GetAuthor handles GET /api/authors/{authorId} requests.
func (h *AuthorsHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := parseIDParam(w, r, "authorId")
	if !ok {
		return
	}

	uow := h.gateway.Begin()
	defer uow.Discard()

	author, err := h.newAuthors(uow).GetAuthor(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	shared.Respond(w, r, http.StatusOK, mapping.AuthorToResponse(author))
}

// UpdateAuthor handles PUT /api/authors/{authorId} requests: a full
// replace of the author's first and last name.
func (h *AuthorsHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := parseIDParam(w, r, "authorId")
	if !ok {
		return
	}

	var dto mapping.AuthorForUpdate
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusBadRequest, "Request body could not be parsed", err)
		return
	}

	fieldErrors, err := shared.ValidateStruct(dto)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to validate request", err)
		return
	}
	if len(fieldErrors) > 0 {
		shared.RespondWithValidationProblem(w, r, fieldErrors)
		return
	}

	uow := h.gateway.Begin()
	defer uow.Discard()
	authors := h.newAuthors(uow)

	author, err := authors.GetAuthor(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	mapping.ApplyAuthorUpdate(dto, author)

	if err := authors.UpdateAuthor(author); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	if err := uow.Save(r.Context()); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("author updated", slog.String("author_id", authorID.String()))
	shared.Respond(w, r, http.StatusOK, mapping.AuthorToResponse(author))
}

// PatchAuthor handles PATCH /api/authors/{authorId} requests with a
// JSON-Patch document. The patch is applied to the author's update DTO;
// the patched DTO is validated and only then mapped back onto the entity.
func (h *AuthorsHandler) PatchAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := parseIDParam(w, r, "authorId")
	if !ok {
		return
	}

	var ops []jsonpatch.Operation
	if err := shared.DecodeJSON(r, &ops); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusBadRequest, "Patch document could not be parsed", err)
		return
	}

	uow := h.gateway.Begin()
	defer uow.Discard()
	authors := h.newAuthors(uow)

	author, err := authors.GetAuthor(r.Context(), authorID)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	patched, err := jsonpatch.Apply(mapping.AuthorToUpdate(author), ops)
	if err != nil {
		var opErr *jsonpatch.OpError
		if errors.As(err, &opErr) {
			shared.RespondWithValidationProblem(w, r, []shared.FieldError{
				{Field: opErr.Path, Message: opErr.Error()},
			})
			return
		}
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	fieldErrors, err := shared.ValidateStruct(patched)
	if err != nil {
		shared.RespondWithProblemAndLog(w, r,
			http.StatusInternalServerError, "Failed to validate patched document", err)
		return
	}
	if len(fieldErrors) > 0 {
		shared.RespondWithValidationProblem(w, r, fieldErrors)
		return
	}

	mapping.ApplyAuthorUpdate(patched, author)

	if err := authors.UpdateAuthor(author); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	if err := uow.Save(r.Context()); err != nil {
		shared.RespondWithProblemAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("author patched",
		slog.String("author_id", authorID.String()),
		slog.Int("operations", len(ops)))
	shared.Respond(w, r, http.StatusOK, mapping.AuthorToResponse(author))
}

// parseIDParam extracts and parses a UUID route parameter, answering 400
// for a missing or malformed value.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		shared.RespondWithProblem(w, r, http.StatusBadRequest, "Missing route parameter: "+name)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest, "Invalid identifier format: "+name)
		return uuid.Nil, false
	}

	return id, true
}
