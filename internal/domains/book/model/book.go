package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	authormodel "library-server/internal/domains/author/model"
)

// AllGenresSentinel disables the genre filter. Kept for compatibility
// with the frontend's "all genres" selector.
const AllGenresSentinel = "all genres"

// Book is immutable once created. Author is populated from the authors
// collection on every read.
type Book struct {
	ID        uuid.UUID          `json:"id" db:"id"`
	Title     string             `json:"title" db:"title"`
	Published int                `json:"published" db:"published"`
	AuthorID  uuid.UUID          `json:"-" db:"author_id"`
	Genres    []string           `json:"genres" db:"genres"`
	Author    *authormodel.Author `json:"author,omitempty"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
}

// AddBookRequest - POST /v1/books
type AddBookRequest struct {
	Title     string   `json:"title"`
	Published *int     `json:"published"`
	Author    string   `json:"author"`
	Genres    []string `json:"genres"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Published, validation.NotNil),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Genres, validation.Required, validation.Each(validation.Required)),
	)
}

// Args returns the request fields for INVALID_INPUT error details.
func (r AddBookRequest) Args() map[string]interface{} {
	args := map[string]interface{}{
		"title":  r.Title,
		"author": r.Author,
		"genres": r.Genres,
	}
	if r.Published != nil {
		args["published"] = *r.Published
	}
	return args
}

// BookFilter - query parameters of GET /v1/books. Filters AND-compose;
// an empty field means no restriction.
type BookFilter struct {
	Author string `form:"author"`
	Genre  string `form:"genre"`
}

// BookResponse is the wire shape with the author relationship resolved.
type BookResponse struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Published int            `json:"published"`
	Author    AuthorSummary  `json:"author"`
	Genres    []string       `json:"genres"`
}

// AuthorSummary is the populated author inside a book payload.
type AuthorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Born *int      `json:"born"`
}

func (b *Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Published: b.Published,
		Genres:    b.Genres,
	}
	if b.Author != nil {
		resp.Author = AuthorSummary{
			ID:   b.Author.ID,
			Name: b.Author.Name,
			Born: b.Author.Born,
		}
	}
	return resp
}
