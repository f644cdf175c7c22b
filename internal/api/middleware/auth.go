// Package middleware provides the cross-cutting HTTP middleware: basic
// authentication, content negotiation and request logging.
package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dnt-demos/library-api/internal/api/shared"
)

// Authentication failure reasons echoed to the caller in the
// WWW-Authenticate header and the problem body.
const (
	reasonMissingHeader   = "Missing Authorization header"
	reasonMalformedHeader = "Invalid Authorization header"
	reasonBadCredentials  = "Invalid username or password"
)

// BasicAuth authenticates every request against the single configured
// credential pair. The password is bcrypt-hashed once at construction so
// each comparison is constant-time.
type BasicAuth struct {
	username       string
	hashedPassword []byte
	logger         *slog.Logger
}

// NewBasicAuth creates a BasicAuth middleware for the given credential pair.
func NewBasicAuth(username, password string, logger *slog.Logger) (*BasicAuth, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("basic auth credentials must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash configured password: %w", err)
	}

	return &BasicAuth{
		username:       username,
		hashedPassword: hashed,
		logger:         logger.With(slog.String("component", "basic_auth")),
	}, nil
}

// Require rejects unauthenticated requests with 401, echoing the failure
// reason in the WWW-Authenticate header and a problem-details body. On
// success the username is added to the request context.
func (m *BasicAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, reason := m.authenticate(r)
		if reason != "" {
			m.logger.Debug("authentication failed",
				slog.String("reason", reason),
				slog.String("path", r.URL.Path))
			w.Header().Set("WWW-Authenticate", reason)
			shared.RespondWithProblem(w, r, http.StatusUnauthorized, reason)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UsernameContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Verify records the authentication outcome in the request context
// without rejecting. The documentation handler uses it so it can shape
// its 401 response around the redacted document.
func (m *BasicAuth) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, reason := m.authenticate(r)

		ctx := r.Context()
		if reason != "" {
			ctx = context.WithValue(ctx, shared.AuthFailureContextKey, reason)
		} else {
			ctx = context.WithValue(ctx, shared.UsernameContextKey, username)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate checks the Authorization header against the configured
// pair. It returns the authenticated username, or a non-empty failure
// reason.
func (m *BasicAuth) authenticate(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", reasonMissingHeader
	}

	scheme, parameter, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", reasonMalformedHeader
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parameter))
	if err != nil {
		return "", reasonMalformedHeader
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", reasonMalformedHeader
	}

	if username != m.username {
		return "", reasonBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(m.hashedPassword, []byte(password)); err != nil {
		return "", reasonBadCredentials
	}

	return username, ""
}
