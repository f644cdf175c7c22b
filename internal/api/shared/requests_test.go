package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateRequest struct {
	FirstName string `json:"firstName" validate:"required,max=150"`
	LastName  string `json:"lastName"  validate:"required,max=150"`
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"firstName":"Eric","lastName":"Blair"}`))

	var decoded updateRequest
	require.NoError(t, DecodeJSON(r, &decoded))
	assert.Equal(t, updateRequest{FirstName: "Eric", LastName: "Blair"}, decoded)

	r = httptest.NewRequest("PUT", "/", strings.NewReader(`{not json`))
	assert.Error(t, DecodeJSON(r, &decoded))
}

func TestValidateStruct(t *testing.T) {
	fieldErrors, err := ValidateStruct(updateRequest{FirstName: "Eric", LastName: "Blair"})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
}

func TestValidateStructViolations(t *testing.T) {
	fieldErrors, err := ValidateStruct(updateRequest{FirstName: "Eric"})

	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	// Field names in violations use the wire-level json names.
	assert.Equal(t, "lastName", fieldErrors[0].Field)
	assert.Equal(t, "required field", fieldErrors[0].Message)

	fieldErrors, err = ValidateStruct(updateRequest{
		FirstName: strings.Repeat("a", 151),
		LastName:  "Blair",
	})
	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "firstName", fieldErrors[0].Field)
	assert.Equal(t, "too long", fieldErrors[0].Message)
}
