package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dnt-demos/library-api/internal/api/middleware"
)

// RouterDeps carries everything the router needs to wire up.
type RouterDeps struct {
	Authors *AuthorsHandler
	Books   *BooksHandler
	Docs    *DocsHandler
	Auth    *middleware.BasicAuth
}

// NewRouter assembles the chi router with the full middleware chain and
// all routes. Every /api route requires authentication; the docs route
// checks credentials itself so it can serve a redacted document on 401.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(deps.Auth.Require)
		r.Use(middleware.Negotiate)

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", deps.Authors.ListAuthors)

			r.Route("/{authorId}", func(r chi.Router) {
				r.Get("/", deps.Authors.GetAuthor)
				r.Put("/", deps.Authors.UpdateAuthor)
				r.Patch("/", deps.Authors.PatchAuthor)

				r.Route("/books", func(r chi.Router) {
					r.Get("/", deps.Books.ListBooks)
					r.Post("/", deps.Books.CreateBook)
					r.Get("/{bookId}", deps.Books.GetBook)
				})
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Verify)
		r.Get("/docs/openapi.json", deps.Docs.GetDocument)
	})

	return r
}
