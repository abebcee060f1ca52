package service

import (
	"context"

	"github.com/google/uuid"

	"library-server/internal/domains/author/model"
	usermodel "library-server/internal/domains/user/model"
)

type ServiceInterface interface {
	Count(ctx context.Context) (int, error)

	// GetAllWithBookCounts is the batch aggregate path: authors and
	// books are each fetched once and the counts joined in memory.
	GetAllWithBookCounts(ctx context.Context) ([]model.AuthorResponse, error)

	// GetWithBookCount is the single-author fallback path: a direct
	// count query scoped to one author.
	GetWithBookCount(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)

	// EditBorn sets an author's birth year. Requires authentication.
	// An unknown name returns (nil, nil): no-op, not an error.
	EditBorn(ctx context.Context, currentUser *usermodel.User, name string, born int) (*model.Author, error)
}
