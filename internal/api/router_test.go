package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnt-demos/library-api/internal/api/shared"
)

func TestAPIRoutesRequireAuthentication(t *testing.T) {
	memStore := newMemoryStore()
	author := memStore.addAuthor("George", "Orwell")
	server := newTestServer(t, memStore)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/authors"},
		{"GET", "/api/authors/" + author.ID.String()},
		{"PUT", "/api/authors/" + author.ID.String()},
		{"PATCH", "/api/authors/" + author.ID.String()},
		{"GET", "/api/authors/" + author.ID.String() + "/books"},
		{"POST", "/api/authors/" + author.ID.String() + "/books"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Missing Authorization header", w.Header().Get("WWW-Authenticate"))

			var problem shared.Problem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, "Missing Authorization header", problem.Detail)
			assert.Equal(t, http.StatusUnauthorized, problem.Status)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t, newMemoryStore())

	w := doRequest(server, httptest.NewRequest("GET", "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
