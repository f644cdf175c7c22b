package mapping

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dnt-demos/library-api/internal/domain"
)

// BookToResponse projects a Book entity to its response DTO, deriving the
// author name fields from the loaded Author relation. Returns
// domain.ErrAuthorNotLoaded if the relation was not eagerly loaded; the
// services' book queries always load it.
func BookToResponse(book *domain.Book) (BookResponse, error) {
	if !book.AuthorLoaded() {
		return BookResponse{}, domain.ErrAuthorNotLoaded
	}

	return BookResponse{
		ID:              book.ID.String(),
		Title:           book.Title,
		Description:     book.Description,
		AmountOfPages:   book.AmountOfPages,
		AuthorFirstName: book.Author.FirstName,
		AuthorLastName:  book.Author.LastName,
	}, nil
}

// BooksToResponses projects a sequence of Book entities.
func BooksToResponses(books []*domain.Book) ([]BookResponse, error) {
	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		response, err := BookToResponse(book)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// BookToConcatenatedResponse projects a Book entity to the alternate DTO
// with the author's full name in a single field. Returns
// domain.ErrAuthorNotLoaded if the relation was not eagerly loaded.
func BookToConcatenatedResponse(book *domain.Book) (BookWithConcatenatedAuthorName, error) {
	if !book.AuthorLoaded() {
		return BookWithConcatenatedAuthorName{}, domain.ErrAuthorNotLoaded
	}

	return BookWithConcatenatedAuthorName{
		ID:          book.ID.String(),
		Title:       book.Title,
		Description: book.Description,
		Author:      fmt.Sprintf("%s %s", book.Author.FirstName, book.Author.LastName),
	}, nil
}

// BookFromCreation constructs a new Book entity for the given author from
// the base creation DTO. The entity ID is assigned here.
func BookFromCreation(authorID uuid.UUID, dto BookForCreation) (*domain.Book, error) {
	return domain.NewBook(authorID, dto.Title, dto.Description, nil)
}

// BookFromCreationWithPages constructs a new Book entity for the given
// author from the creation DTO carrying a page count.
func BookFromCreationWithPages(
	authorID uuid.UUID,
	dto BookForCreationWithAmountOfPages,
) (*domain.Book, error) {
	pages := dto.AmountOfPages
	return domain.NewBook(authorID, dto.Title, dto.Description, &pages)
}
