// Package shared provides helpers used across all HTTP handlers:
// context keys, content negotiation, response writing and request
// decoding/validation.
package shared

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// FormatContextKey carries the negotiated response format.
	FormatContextKey contextKey = "response_format"

	// UsernameContextKey carries the authenticated username.
	UsernameContextKey contextKey = "username"

	// AuthFailureContextKey carries the authentication failure reason when
	// the request passed through the non-rejecting Verify middleware.
	AuthFailureContextKey contextKey = "auth_failure"
)

// IsAuthenticated reports whether the request context carries an
// authenticated username.
func IsAuthenticated(ctx context.Context) bool {
	username, ok := ctx.Value(UsernameContextKey).(string)
	return ok && username != ""
}

// AuthFailureReason returns the recorded authentication failure reason,
// if any.
func AuthFailureReason(ctx context.Context) string {
	reason, _ := ctx.Value(AuthFailureContextKey).(string)
	return reason
}
