package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Born      *int      `json:"born" db:"born"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EditAuthorRequest - PUT /v1/authors/:name
type EditAuthorRequest struct {
	SetBornTo *int `json:"set_born_to"`
}

func (r EditAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SetBornTo, validation.NotNil),
	)
}

// AuthorResponse carries the author fields plus the derived bookCount.
// BookCount is computed, never stored.
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Born      *int      `json:"born"`
	BookCount int       `json:"book_count"`
}

func (a *Author) ToResponse(bookCount int) *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Born:      a.Born,
		BookCount: bookCount,
	}
}
