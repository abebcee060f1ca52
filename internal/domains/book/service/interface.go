package service

import (
	"context"

	"library-server/internal/domains/book/model"
	usermodel "library-server/internal/domains/user/model"
)

type ServiceInterface interface {
	Count(ctx context.Context) (int, error)
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.BookResponse, error)

	// AllGenres returns every distinct genre across all books, ordered
	// by first occurrence.
	AllGenres(ctx context.Context) ([]string, error)

	// Add runs the addBook state machine: authentication gate, author
	// find-or-create, book insert, then event publish. Requires
	// authentication; no side effect happens before that check.
	Add(ctx context.Context, currentUser *usermodel.User, req model.AddBookRequest) (*model.BookResponse, error)
}
