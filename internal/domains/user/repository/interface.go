package repository

import (
	"context"

	"github.com/google/uuid"

	"library-server/internal/domains/user/model"
)

// RepositoryInterface is the store adapter for the users collection.
// Users are never mutated or deleted.
type RepositoryInterface interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
}
