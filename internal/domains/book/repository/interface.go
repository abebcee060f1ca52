package repository

import (
	"context"

	"library-server/internal/domains/book/model"
)

// RepositoryInterface is the store adapter for the books collection.
// All reads return books with the author relationship populated.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	Count(ctx context.Context) (int, error)
}
