package shared

import (
	"context"
	"net/http"
	"strings"
)

// Format is a negotiated response representation.
type Format int

const (
	// FormatJSON serializes response bodies as JSON with camelCase names.
	FormatJSON Format = iota

	// FormatXML serializes response bodies as XML.
	FormatXML
)

// Negotiate picks a response format from the request's Accept header.
// An absent header, */* or application/json selects JSON; application/xml
// and text/xml select XML. Returns false when no supported representation
// matches, in which case the caller must answer 406.
func Negotiate(r *http.Request) (Format, bool) {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return FormatJSON, true
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.Index(mediaType, ";"); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}

		switch strings.ToLower(mediaType) {
		case "", "*/*", "application/*", "application/json":
			return FormatJSON, true
		case "application/xml", "text/xml":
			return FormatXML, true
		}

		// Vendor media types like application/vnd.*+json are JSON shapes.
		if strings.HasSuffix(strings.ToLower(mediaType), "+json") {
			return FormatJSON, true
		}
	}

	return FormatJSON, false
}

// WithFormat stores the negotiated format in the context.
func WithFormat(ctx context.Context, format Format) context.Context {
	return context.WithValue(ctx, FormatContextKey, format)
}

// FormatFromContext returns the negotiated format, defaulting to JSON.
func FormatFromContext(ctx context.Context) Format {
	if format, ok := ctx.Value(FormatContextKey).(Format); ok {
		return format
	}
	return FormatJSON
}

// AcceptsMediaType reports whether the Accept header explicitly lists the
// given media type. Used for vendor-specific response shapes.
func AcceptsMediaType(r *http.Request, mediaType string) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		candidate := strings.TrimSpace(part)
		if i := strings.Index(candidate, ";"); i >= 0 {
			candidate = strings.TrimSpace(candidate[:i])
		}
		if strings.EqualFold(candidate, mediaType) {
			return true
		}
	}
	return false
}
