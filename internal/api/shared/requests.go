package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the global validator instance for request DTOs. Field names
// in validation errors are taken from the json tag so that 422 bodies
// refer to wire-level names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. A failure here means the
// body could not be parsed into the expected shape at all, which callers
// surface as 400, never 422.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateStruct validates v against its declared constraints and returns
// one FieldError per violation. A nil, nil return means v is valid.
func ValidateStruct(v any) ([]FieldError, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a field-level failure; the caller treats this as an
		// internal error rather than a 422.
		return nil, err
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldError.Field(),
			Message: tagMessage(fieldError.Tag()),
		})
	}

	return fieldErrors, nil
}

// tagMessage maps validation tags to user-facing messages.
func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	case "min":
		return "too short"
	case "gt":
		return "must be greater than zero"
	default:
		return "validation failed"
	}
}
