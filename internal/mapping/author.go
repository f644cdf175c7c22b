package mapping

import (
	"github.com/dnt-demos/library-api/internal/domain"
)

// AuthorToResponse projects an Author entity to its response DTO.
func AuthorToResponse(author *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:        author.ID.String(),
		FirstName: author.FirstName,
		LastName:  author.LastName,
	}
}

// AuthorsToResponses projects a sequence of Author entities.
func AuthorsToResponses(authors []*domain.Author) []AuthorResponse {
	responses := make([]AuthorResponse, 0, len(authors))
	for _, author := range authors {
		responses = append(responses, AuthorToResponse(author))
	}
	return responses
}

// AuthorToUpdate projects an Author entity to the update DTO. This is the
// document a JSON-Patch is applied to before being mapped back.
func AuthorToUpdate(author *domain.Author) AuthorForUpdate {
	return AuthorForUpdate{
		FirstName: author.FirstName,
		LastName:  author.LastName,
	}
}

// ApplyAuthorUpdate overwrites the entity's first and last name from the
// update DTO. Used for both PUT full-replace and for re-applying a
// patched DTO onto the entity.
func ApplyAuthorUpdate(dto AuthorForUpdate, author *domain.Author) {
	author.FirstName = dto.FirstName
	author.LastName = dto.LastName
}
