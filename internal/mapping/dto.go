// Package mapping defines the request/response DTO shapes and the pure
// transformation functions between them and the domain entities. There is
// one explicit function per (source shape, target shape) pair; no
// reflection-based engine. Mapping performs no I/O and has no persistence
// side effects.
package mapping

// AuthorResponse is the response projection of an Author entity.
type AuthorResponse struct {
	ID        string `json:"id"        xml:"id"`
	FirstName string `json:"firstName" xml:"firstName"`
	LastName  string `json:"lastName"  xml:"lastName"`
}

// AuthorForUpdate is the input shape for full-replace author updates.
// It is also the document JSON-Patch operations are applied to before
// the result is validated and mapped back onto the entity.
type AuthorForUpdate struct {
	FirstName string `json:"firstName" xml:"firstName" validate:"required,max=150"`
	LastName  string `json:"lastName"  xml:"lastName"  validate:"required,max=150"`
}

// BookResponse is the response projection of a Book entity with the
// author's names denormalized from the loaded Author relation.
type BookResponse struct {
	ID              string `json:"id"                      xml:"id"`
	Title           string `json:"title"                   xml:"title"`
	Description     string `json:"description"             xml:"description"`
	AmountOfPages   *int   `json:"amountOfPages,omitempty" xml:"amountOfPages,omitempty"`
	AuthorFirstName string `json:"authorFirstName"         xml:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"          xml:"authorLastName"`
}

// BookWithConcatenatedAuthorName is the alternate response projection
// combining the author's full name into a single field.
type BookWithConcatenatedAuthorName struct {
	ID          string `json:"id"          xml:"id"`
	Title       string `json:"title"       xml:"title"`
	Description string `json:"description" xml:"description"`
	Author      string `json:"author"      xml:"author"`
}

// BookForCreation is the input shape for creating a book.
type BookForCreation struct {
	Title       string `json:"title"       xml:"title"       validate:"required,max=150"`
	Description string `json:"description" xml:"description" validate:"max=500"`
}

// BookForCreationWithAmountOfPages is the alternate input shape for
// creating a book when the page count is known.
type BookForCreationWithAmountOfPages struct {
	Title         string `json:"title"         xml:"title"         validate:"required,max=150"`
	Description   string `json:"description"   xml:"description"   validate:"max=500"`
	AmountOfPages int    `json:"amountOfPages" xml:"amountOfPages" validate:"required,gt=0"`
}
