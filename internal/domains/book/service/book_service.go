package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	authormodel "library-server/internal/domains/author/model"
	authorrepo "library-server/internal/domains/author/repository"
	"library-server/internal/domains/book/model"
	"library-server/internal/domains/book/repository"
	usermodel "library-server/internal/domains/user/model"
	"library-server/internal/shared/apperrors"
)

// EventPublisher notifies live subscribers of catalog changes.
// Satisfied by events.Bus.
type EventPublisher interface {
	PublishBookAdded(ctx context.Context, book *model.BookResponse) error
}

type bookService struct {
	repo      repository.RepositoryInterface
	authors   authorrepo.RepositoryInterface
	publisher EventPublisher
}

func NewBookService(repo repository.RepositoryInterface, authors authorrepo.RepositoryInterface, publisher EventPublisher) ServiceInterface {
	return &bookService{
		repo:      repo,
		authors:   authors,
		publisher: publisher,
	}
}

func (s *bookService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *bookService) GetAll(ctx context.Context, filter model.BookFilter) ([]model.BookResponse, error) {
	// The frontend's "all genres" selector sends the sentinel instead of
	// omitting the parameter.
	if filter.Genre == model.AllGenresSentinel {
		filter.Genre = ""
	}

	books, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]model.BookResponse, 0, len(books))
	for i := range books {
		result = append(result, *books[i].ToResponse())
	}
	return result, nil
}

// AllGenres deduplicates genre strings across all books, keeping the
// insertion order of first occurrence for stable output.
func (s *bookService) AllGenres(ctx context.Context) ([]string, error) {
	books, err := s.repo.GetAll(ctx, model.BookFilter{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	genres := []string{}
	for _, b := range books {
		for _, g := range b.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}

	return genres, nil
}

// Add implements the addBook mutation:
//  1. authentication gate, before any store access
//  2. author lookup by exact name
//  3. create the author with born = null when absent; a uniqueness
//     violation from a concurrent duplicate create surfaces as
//     INVALID_INPUT with the offending arguments
//  4. persist the book
//  5. publish bookAdded only after the insert is confirmed
func (s *bookService) Add(ctx context.Context, currentUser *usermodel.User, req model.AddBookRequest) (*model.BookResponse, error) {
	if currentUser == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	if err := req.Validate(); err != nil {
		return nil, apperrors.Input(err, req.Args())
	}

	author, err := s.authors.GetByName(ctx, req.Author)
	if err != nil {
		if !errors.Is(err, authormodel.ErrAuthorNotFound) {
			return nil, err
		}

		author, err = s.authors.Create(ctx, &authormodel.Author{Name: req.Author})
		if err != nil {
			// The unique index on name is the backstop for the
			// unsynchronized find-or-create; the losing request fails.
			return nil, apperrors.Input(err, req.Args())
		}
	}

	book := &model.Book{
		Title:     req.Title,
		Published: *req.Published,
		AuthorID:  author.ID,
		Genres:    req.Genres,
		Author:    author,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, apperrors.Input(err, req.Args())
	}

	resp := created.ToResponse()

	if err := s.publisher.PublishBookAdded(ctx, resp); err != nil {
		// The book is persisted; a failed fan-out must not fail the
		// mutation.
		log.Error().Err(err).Str("book_id", created.ID.String()).Msg("failed to publish bookAdded event")
	}

	return resp, nil
}
