// Package jsonpatch implements a deliberately small JSON-Patch (RFC 6902)
// interpreter over a closed set of operation kinds. It supports replace on
// top-level scalar fields of a JSON-tagged struct, with add treated as
// replace and remove as clearing a field. move, copy and test, unknown
// operation kinds, and unknown paths all fail with an OpError identifying
// the offending operation; nothing is ever silently skipped.
package jsonpatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPatch is the sentinel wrapped by every OpError, so callers can
// classify any patch-application failure with errors.Is.
var ErrInvalidPatch = errors.New("invalid patch document")

// Operation is a single JSON-Patch operation.
type Operation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// OpError describes why a specific operation could not be applied.
type OpError struct {
	Index  int    // position of the operation in the patch document
	Op     string // the operation kind as submitted
	Path   string // the path as submitted
	Reason string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %s", e.Index, e.Op, e.Path, e.Reason)
}

func (e *OpError) Unwrap() error {
	return ErrInvalidPatch
}

// Apply applies the operation sequence to doc and returns the patched
// copy. doc must marshal to a flat JSON object. The input is never
// mutated; on error the zero value of T is returned together with an
// *OpError for the first operation that failed.
func Apply[T any](doc T, ops []Operation) (T, error) {
	var zero T

	raw, err := json.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal patch target: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, fmt.Errorf("failed to decompose patch target: %w", err)
	}

	for i, op := range ops {
		if err := applyOne(fields, i, op); err != nil {
			return zero, err
		}

		// Re-assemble after every operation so that a type mismatch is
		// attributed to the operation that introduced it.
		patched, err := reassemble[T](fields)
		if err != nil {
			return zero, &OpError{
				Index:  i,
				Op:     op.Op,
				Path:   op.Path,
				Reason: "value has the wrong type for the target field",
			}
		}
		doc = patched
	}

	return doc, nil
}

// applyOne mutates fields according to a single operation.
func applyOne(fields map[string]json.RawMessage, index int, op Operation) error {
	field, ok := resolvePath(fields, op.Path)
	if !ok {
		return &OpError{
			Index:  index,
			Op:     op.Op,
			Path:   op.Path,
			Reason: "path does not refer to a known field",
		}
	}

	switch strings.ToLower(op.Op) {
	case "replace", "add":
		if len(op.Value) == 0 {
			return &OpError{
				Index:  index,
				Op:     op.Op,
				Path:   op.Path,
				Reason: "missing value",
			}
		}
		fields[field] = op.Value
		return nil

	case "remove":
		fields[field] = json.RawMessage("null")
		return nil

	default:
		return &OpError{
			Index:  index,
			Op:     op.Op,
			Path:   op.Path,
			Reason: "unsupported operation",
		}
	}
}

// resolvePath maps a single-level JSON-Pointer path like "/firstName" to a
// field key, matching case-insensitively so "/firstname" targets the same
// field. Nested pointers are not part of the supported surface.
func resolvePath(fields map[string]json.RawMessage, path string) (string, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", false
	}

	name := path[1:]
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}

	for key := range fields {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}

	return "", false
}

// reassemble builds a T back out of the field map.
func reassemble[T any](fields map[string]json.RawMessage) (T, error) {
	var result T

	raw, err := json.Marshal(fields)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return result, err
	}

	return result, nil
}
