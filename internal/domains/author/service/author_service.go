package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"library-server/internal/domains/author/model"
	"library-server/internal/domains/author/repository"
	bookmodel "library-server/internal/domains/book/model"
	usermodel "library-server/internal/domains/user/model"
	"library-server/internal/shared/apperrors"
)

// BookSource provides the one-shot book listing the batch aggregate
// needs. Satisfied by the book repository.
type BookSource interface {
	GetAll(ctx context.Context, filter bookmodel.BookFilter) ([]bookmodel.Book, error)
}

type authorService struct {
	repo  repository.RepositoryInterface
	books BookSource
}

func NewAuthorService(repo repository.RepositoryInterface, books BookSource) ServiceInterface {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

func (s *authorService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// GetAllWithBookCounts computes bookCount for every author in
// O(authors + books): one fetch of each collection, one counting pass
// over the books, then a join by author id. The two fetches have no
// ordering dependency and run concurrently.
func (s *authorService) GetAllWithBookCounts(ctx context.Context) ([]model.AuthorResponse, error) {
	var (
		authors    []model.Author
		books      []bookmodel.Book
		authorsErr error
		booksErr   error
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		authors, authorsErr = s.repo.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		books, booksErr = s.books.GetAll(ctx, bookmodel.BookFilter{})
	}()
	wg.Wait()

	if authorsErr != nil {
		return nil, authorsErr
	}
	if booksErr != nil {
		return nil, booksErr
	}

	counts := make(map[uuid.UUID]int, len(authors))
	for _, b := range books {
		counts[b.AuthorID]++
	}

	result := make([]model.AuthorResponse, 0, len(authors))
	for i := range authors {
		result = append(result, *authors[i].ToResponse(counts[authors[i].ID]))
	}

	return result, nil
}

// GetWithBookCount resolves a single author outside the batch pass,
// using the direct count query. Correctness over performance on this
// rare path; results must match the batch path for the same data.
func (s *authorService) GetWithBookCount(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return nil, err
	}

	return a.ToResponse(count), nil
}

func (s *authorService) EditBorn(ctx context.Context, currentUser *usermodel.User, name string, born int) (*model.Author, error) {
	if currentUser == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	a, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			// Unknown author is a deliberate no-op, not an error.
			return nil, nil
		}
		return nil, err
	}

	return s.repo.UpdateBorn(ctx, a.ID, born)
}
