// Package openapi builds the API's OpenAPI 3 document. The document is
// assembled programmatically at startup and served by the docs handler;
// for unauthenticated callers a redacted copy with no paths and no
// schemas is used instead.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Document builds the full OpenAPI document for the Library API.
func Document() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Library API",
			Version:     "1",
			Description: "Through this API you can access authors and their books.",
			License: &openapi3.License{
				Name: "MIT License",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: schemas(),
			SecuritySchemes: openapi3.SecuritySchemes{
				"basicAuth": &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{
						Type:   "http",
						Scheme: "basic",
					},
				},
			},
		},
		Security: openapi3.SecurityRequirements{
			{"basicAuth": []string{}},
		},
	}

	doc.Paths.Set("/api/authors", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "ListAuthors",
			Summary:     "Get a list of authors",
			Tags:        []string{"Authors"},
			Responses:   listResponse("Author", "The list of authors"),
		},
	})

	doc.Paths.Set("/api/authors/{authorId}", &openapi3.PathItem{
		Parameters: pathParameters("authorId"),
		Get: &openapi3.Operation{
			OperationID: "GetAuthor",
			Summary:     "Get an author by id",
			Tags:        []string{"Authors"},
			Responses:   entityResponse("Author", "The requested author", true),
		},
		Put: &openapi3.Operation{
			OperationID: "UpdateAuthor",
			Summary:     "Update an author",
			Tags:        []string{"Authors"},
			RequestBody: jsonBody("AuthorForUpdate", "application/json"),
			Responses:   mutationResponse("Author", "The updated author"),
		},
		Patch: &openapi3.Operation{
			OperationID: "PatchAuthor",
			Summary:     "Partially update an author with a JSON-Patch document",
			Tags:        []string{"Authors"},
			RequestBody: jsonBody("JsonPatchDocument", "application/json-patch+json"),
			Responses:   mutationResponse("Author", "The patched author"),
		},
	})

	doc.Paths.Set("/api/authors/{authorId}/books", &openapi3.PathItem{
		Parameters: pathParameters("authorId"),
		Get: &openapi3.Operation{
			OperationID: "ListBooks",
			Summary:     "Get the books for a specific author",
			Tags:        []string{"Books"},
			Responses:   listResponse("Book", "The author's books"),
		},
		Post: &openapi3.Operation{
			OperationID: "CreateBook",
			Summary:     "Create a book for a specific author",
			Tags:        []string{"Books"},
			RequestBody: jsonBody("BookForCreation", "application/json"),
			Responses:   createdResponse("Book", "The created book"),
		},
	})

	doc.Paths.Set("/api/authors/{authorId}/books/{bookId}", &openapi3.PathItem{
		Parameters: pathParameters("authorId", "bookId"),
		Get: &openapi3.Operation{
			OperationID: "GetBook",
			Summary:     "Get a book by id for a specific author",
			Tags:        []string{"Books"},
			Responses:   entityResponse("Book", "The requested book", true),
		},
	})

	return doc
}

// Redacted returns a copy of the document with no paths and no schemas,
// keeping only the top-level metadata. Served to unauthenticated callers.
func Redacted(doc *openapi3.T) *openapi3.T {
	redacted := *doc
	redacted.Paths = openapi3.NewPaths()
	if doc.Components != nil {
		components := *doc.Components
		components.Schemas = openapi3.Schemas{}
		redacted.Components = &components
	}
	return &redacted
}

// schemas declares the component schema for every DTO shape.
func schemas() openapi3.Schemas {
	uuidSchema := openapi3.NewStringSchema().WithFormat("uuid")

	author := openapi3.NewObjectSchema().
		WithProperty("id", uuidSchema).
		WithProperty("firstName", openapi3.NewStringSchema().WithMaxLength(150)).
		WithProperty("lastName", openapi3.NewStringSchema().WithMaxLength(150))

	authorForUpdate := openapi3.NewObjectSchema().
		WithProperty("firstName", openapi3.NewStringSchema().WithMaxLength(150)).
		WithProperty("lastName", openapi3.NewStringSchema().WithMaxLength(150))
	authorForUpdate.Required = []string{"firstName", "lastName"}

	book := openapi3.NewObjectSchema().
		WithProperty("id", uuidSchema).
		WithProperty("title", openapi3.NewStringSchema().WithMaxLength(150)).
		WithProperty("description", openapi3.NewStringSchema().WithMaxLength(500)).
		WithProperty("amountOfPages", openapi3.NewIntegerSchema().WithNullable()).
		WithProperty("authorFirstName", openapi3.NewStringSchema()).
		WithProperty("authorLastName", openapi3.NewStringSchema())

	bookWithAuthorName := openapi3.NewObjectSchema().
		WithProperty("id", uuidSchema).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("author", openapi3.NewStringSchema())

	bookForCreation := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema().WithMaxLength(150)).
		WithProperty("description", openapi3.NewStringSchema().WithMaxLength(500))
	bookForCreation.Required = []string{"title"}

	bookForCreationWithPages := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema().WithMaxLength(150)).
		WithProperty("description", openapi3.NewStringSchema().WithMaxLength(500)).
		WithProperty("amountOfPages", openapi3.NewIntegerSchema().WithMin(1))
	bookForCreationWithPages.Required = []string{"title", "amountOfPages"}

	patchOperation := openapi3.NewObjectSchema().
		WithProperty("op", openapi3.NewStringSchema()).
		WithProperty("path", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewSchema())
	patchOperation.Required = []string{"op", "path"}

	problem := openapi3.NewObjectSchema().
		WithProperty("detail", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewIntegerSchema()).
		WithPropertyRef("errors", &openapi3.SchemaRef{
			Value: openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema().
				WithProperty("field", openapi3.NewStringSchema()).
				WithProperty("message", openapi3.NewStringSchema())),
		})

	return openapi3.Schemas{
		"Author":                           schemaRef(author),
		"AuthorForUpdate":                  schemaRef(authorForUpdate),
		"Book":                             schemaRef(book),
		"BookWithConcatenatedAuthorName":   schemaRef(bookWithAuthorName),
		"BookForCreation":                  schemaRef(bookForCreation),
		"BookForCreationWithAmountOfPages": schemaRef(bookForCreationWithPages),
		"JsonPatchDocument": {
			Value: openapi3.NewArraySchema().WithItems(patchOperation),
		},
		"Problem": schemaRef(problem),
	}
}

func schemaRef(schema *openapi3.Schema) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: schema}
}

func componentRef(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + name}
}

func pathParameters(names ...string) openapi3.Parameters {
	parameters := make(openapi3.Parameters, 0, len(names))
	for _, name := range names {
		parameter := openapi3.NewPathParameter(name).
			WithSchema(openapi3.NewStringSchema().WithFormat("uuid"))
		parameters = append(parameters, &openapi3.ParameterRef{Value: parameter})
	}
	return parameters
}

func jsonBody(schemaName, mediaType string) *openapi3.RequestBodyRef {
	body := openapi3.NewRequestBody().WithRequired(true)
	body.Content = openapi3.Content{
		mediaType: openapi3.NewMediaType().WithSchemaRef(componentRef(schemaName)),
	}
	return &openapi3.RequestBodyRef{Value: body}
}

func withCommonErrors(responses *openapi3.Responses) *openapi3.Responses {
	responses.Set("401", problemResponse("Authentication failed"))
	responses.Set("406", problemResponse("The requested representation is not supported"))
	return responses
}

func listResponse(schemaName, description string) *openapi3.Responses {
	responses := openapi3.NewResponses()
	responses.Set("200", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(&openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type:  &openapi3.Types{"array"},
					Items: componentRef(schemaName),
				},
			}),
	})
	return withCommonErrors(responses)
}

func entityResponse(schemaName, description string, notFound bool) *openapi3.Responses {
	responses := openapi3.NewResponses()
	responses.Set("200", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(componentRef(schemaName)),
	})
	if notFound {
		responses.Set("404", problemResponse("The requested resource was not found"))
	}
	return withCommonErrors(responses)
}

func mutationResponse(schemaName, description string) *openapi3.Responses {
	responses := entityResponse(schemaName, description, true)
	responses.Set("422", problemResponse("Validation failed"))
	responses.Set("400", problemResponse("The request could not be parsed"))
	return responses
}

func createdResponse(schemaName, description string) *openapi3.Responses {
	responses := openapi3.NewResponses()
	responses.Set("201", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(componentRef(schemaName)),
	})
	responses.Set("404", problemResponse("The requested resource was not found"))
	responses.Set("422", problemResponse("Validation failed"))
	responses.Set("400", problemResponse("The request could not be parsed"))
	return withCommonErrors(responses)
}

func problemResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(componentRef("Problem")),
	}
}
