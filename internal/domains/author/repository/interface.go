package repository

import (
	"context"

	"github.com/google/uuid"

	"library-server/internal/domains/author/model"
)

// RepositoryInterface is the store adapter for the authors collection.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetByName(ctx context.Context, name string) (*model.Author, error)
	GetAll(ctx context.Context) ([]model.Author, error)
	Count(ctx context.Context) (int, error)
	UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*model.Author, error)

	// CountBooks is the fallback aggregate path: a direct count query
	// scoped to a single author. The batch path in the service must
	// produce the same number for the same data.
	CountBooks(ctx context.Context, authorID uuid.UUID) (int, error)
}
