package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Name string `json:"name" xml:"name"`
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	Respond(w, r, http.StatusOK, sampleBody{Name: "Orwell"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var decoded sampleBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, "Orwell", decoded.Name)
}

func TestRespondXML(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithFormat(r.Context(), FormatXML))

	Respond(w, r, http.StatusOK, sampleBody{Name: "Orwell"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<name>Orwell</name>")
}

func TestRespondXMLSequence(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithFormat(r.Context(), FormatXML))

	Respond(w, r, http.StatusOK, []sampleBody{{Name: "Orwell"}, {Name: "Le Guin"}})

	body := w.Body.String()
	assert.Contains(t, body, "<items>")
	assert.Equal(t, 2, strings.Count(body, "<item>"), "each element wrapped as an item")
}

func TestRespondWithProblem(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	RespondWithProblem(w, r, http.StatusNotFound, "Author not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var problem Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "Author not found", problem.Detail)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Empty(t, problem.Errors)
}

func TestRespondWithValidationProblem(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/", nil)

	RespondWithValidationProblem(w, r, []FieldError{
		{Field: "firstName", Message: "required field"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var problem Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "firstName", problem.Errors[0].Field)
}

func TestProblemXML(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithFormat(r.Context(), FormatXML))

	RespondWithProblem(w, r, http.StatusNotFound, "Author not found")

	body := w.Body.String()
	assert.Contains(t, body, "<problem>")
	assert.Contains(t, body, "<detail>Author not found</detail>")
}
