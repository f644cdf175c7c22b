package api

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dnt-demos/library-api/internal/api/shared"
	"github.com/dnt-demos/library-api/internal/openapi"
)

// DocsHandler serves the OpenAPI document. Authenticated callers get the
// full document; everyone else gets a 401 whose body is a redacted copy
// with no paths and no schemas, so the document's existence is visible
// but its contents are not.
type DocsHandler struct {
	document *openapi3.T
	redacted *openapi3.T
	logger   *slog.Logger
}

// NewDocsHandler builds the document once and keeps both variants.
func NewDocsHandler(logger *slog.Logger) *DocsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	doc := openapi.Document()
	return &DocsHandler{
		document: doc,
		redacted: openapi.Redacted(doc),
		logger:   logger.With(slog.String("component", "docs_handler")),
	}
}

// GetDocument handles GET /docs/openapi.json. It relies on the Verify
// middleware having recorded the authentication outcome in the request
// context rather than rejecting the request outright.
func (h *DocsHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	if shared.IsAuthenticated(r.Context()) {
		shared.RespondWithJSON(w, r, http.StatusOK, h.document)
		return
	}

	reason := shared.AuthFailureReason(r.Context())
	h.logger.Debug("serving redacted document",
		slog.String("reason", reason),
	)
	w.Header().Set("WWW-Authenticate", reason)
	shared.RespondWithJSON(w, r, http.StatusUnauthorized, h.redacted)
}
