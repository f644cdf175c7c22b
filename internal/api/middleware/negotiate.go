package middleware

import (
	"net/http"

	"github.com/dnt-demos/library-api/internal/api/shared"
)

// Negotiate resolves the response format from the Accept header before
// route dispatch and stores it in the request context. Requests asking
// only for unsupported representations are answered with 406 here; the
// 406 body itself is JSON since no acceptable format exists.
func Negotiate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format, ok := shared.Negotiate(r)
		if !ok {
			shared.RespondWithJSON(w, r, http.StatusNotAcceptable, shared.Problem{
				Detail: "The requested representation is not supported.",
				Status: http.StatusNotAcceptable,
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithFormat(r.Context(), format)))
	})
}
