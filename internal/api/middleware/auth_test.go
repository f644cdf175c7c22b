package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnt-demos/library-api/internal/api/shared"
)

func newTestAuth(t *testing.T) *BasicAuth {
	t.Helper()
	auth, err := NewBasicAuth("DNT", "123", nil)
	require.NoError(t, err)
	return auth
}

func TestNewBasicAuthRequiresCredentials(t *testing.T) {
	_, err := NewBasicAuth("", "123", nil)
	assert.Error(t, err)

	_, err = NewBasicAuth("DNT", "", nil)
	assert.Error(t, err)
}

func TestRequireRejectsUnauthenticated(t *testing.T) {
	testCases := []struct {
		name       string
		header     string
		wantReason string
	}{
		{
			name:       "missing header",
			header:     "",
			wantReason: "Missing Authorization header",
		},
		{
			name:       "wrong scheme",
			header:     "Bearer sometoken",
			wantReason: "Invalid Authorization header",
		},
		{
			name:       "not base64",
			header:     "Basic !!!",
			wantReason: "Invalid Authorization header",
		},
		{
			name:       "no colon in decoded pair",
			header:     "Basic RE5UMTIz", // "DNT123"
			wantReason: "Invalid Authorization header",
		},
		{
			name:       "wrong username",
			header:     "Basic b3RoZXI6MTIz", // "other:123"
			wantReason: "Invalid username or password",
		},
		{
			name:       "wrong password",
			header:     "Basic RE5UOndyb25n", // "DNT:wrong"
			wantReason: "Invalid username or password",
		},
	}

	auth := newTestAuth(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be reached")
	})

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/api/authors", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			auth.Require(next).ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.wantReason, w.Header().Get("WWW-Authenticate"))

			var problem shared.Problem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, tc.wantReason, problem.Detail)
			assert.Equal(t, http.StatusUnauthorized, problem.Status)
		})
	}
}

func TestRequireAcceptsValidCredentials(t *testing.T) {
	auth := newTestAuth(t)

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		assert.True(t, shared.IsAuthenticated(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/authors", nil)
	r.SetBasicAuth("DNT", "123")

	auth.Require(next).ServeHTTP(w, r)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyNeverRejects(t *testing.T) {
	auth := newTestAuth(t)

	var authenticated bool
	var reason string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated = shared.IsAuthenticated(r.Context())
		reason = shared.AuthFailureReason(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// Unauthenticated requests still reach the handler, with the
	// failure reason recorded in the context.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/docs/openapi.json", nil)
	auth.Verify(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, authenticated)
	assert.Equal(t, "Missing Authorization header", reason)

	// Authenticated requests carry the username instead.
	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/docs/openapi.json", nil)
	r.SetBasicAuth("DNT", "123")
	auth.Verify(next).ServeHTTP(w, r)

	assert.True(t, authenticated)
	assert.Empty(t, reason)
}
