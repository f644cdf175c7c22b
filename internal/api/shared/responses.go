package shared

import (
	"encoding/json"
	"encoding/xml"
	"log/slog"
	"net/http"
	"reflect"
)

// Problem is the error response body, loosely following the RFC 7807
// problem-details shape: a human-readable detail plus the HTTP status.
// Validation failures additionally enumerate the offending fields or
// patch operations.
type Problem struct {
	XMLName xml.Name     `json:"-"               xml:"problem"`
	Detail  string       `json:"detail"          xml:"detail"`
	Status  int          `json:"status"          xml:"status"`
	Errors  []FieldError `json:"errors,omitempty" xml:"errors>error,omitempty"`
}

// FieldError is a single structured validation error.
type FieldError struct {
	Field   string `json:"field"   xml:"field"`
	Message string `json:"message" xml:"message"`
}

// xmlSequence wraps a slice for XML marshaling, since encoding/xml cannot
// marshal a top-level slice.
type xmlSequence struct {
	XMLName xml.Name `xml:"items"`
	Items   any      `xml:"item"`
}

// Respond writes the body in the format negotiated for the request,
// defaulting to JSON. Encoding failures are logged, not surfaced; the
// status line is already on the wire by then.
func Respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	switch FormatFromContext(r.Context()) {
	case FormatXML:
		respondXML(w, status, body)
	default:
		RespondWithJSON(w, r, status, body)
	}
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func respondXML(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	if body == nil {
		return
	}

	if isSequence(body) {
		body = xmlSequence{Items: body}
	}

	if err := xml.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode XML response", "error", err)
	}
}

// isSequence reports whether body is a slice or array value.
func isSequence(body any) bool {
	if body == nil {
		return false
	}
	kind := reflect.ValueOf(body).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// RespondWithProblem writes a problem-details error body with the given
// status and detail message.
func RespondWithProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	Respond(w, r, status, Problem{Detail: detail, Status: status})
}

// RespondWithValidationProblem writes a 422 body enumerating one entry
// per failed field or patch operation.
func RespondWithValidationProblem(w http.ResponseWriter, r *http.Request, fieldErrors []FieldError) {
	Respond(w, r, http.StatusUnprocessableEntity, Problem{
		Detail: "One or more validation errors occurred.",
		Status: http.StatusUnprocessableEntity,
		Errors: fieldErrors,
	})
}

// RespondWithProblemAndLog writes a problem body and logs the underlying
// error. 5xx responses log at ERROR level, everything else at DEBUG; the
// raw error never reaches the client.
func RespondWithProblemAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	detail string,
	err error,
) {
	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status_code", status,
		"detail", detail,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}

	slog.Log(r.Context(), logLevel, "API error response", attrs...)

	RespondWithProblem(w, r, status, detail)
}
