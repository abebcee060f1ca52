package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-server/internal/domains/author/model"
	bookmodel "library-server/internal/domains/book/model"
	usermodel "library-server/internal/domains/user/model"
	"library-server/internal/shared/apperrors"
)

type fakeAuthorRepo struct {
	authors []model.Author
	books   []bookmodel.Book

	updateCalls int
	createCalls int
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	f.createCalls++
	created := *a
	created.ID = uuid.New()
	f.authors = append(f.authors, created)
	return &created, nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	for i := range f.authors {
		if f.authors[i].ID == id {
			a := f.authors[i]
			return &a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (f *fakeAuthorRepo) GetByName(_ context.Context, name string) (*model.Author, error) {
	for i := range f.authors {
		if f.authors[i].Name == name {
			a := f.authors[i]
			return &a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (f *fakeAuthorRepo) GetAll(context.Context) ([]model.Author, error) {
	return append([]model.Author(nil), f.authors...), nil
}

func (f *fakeAuthorRepo) Count(context.Context) (int, error) {
	return len(f.authors), nil
}

func (f *fakeAuthorRepo) UpdateBorn(_ context.Context, id uuid.UUID, born int) (*model.Author, error) {
	f.updateCalls++
	for i := range f.authors {
		if f.authors[i].ID == id {
			b := born
			f.authors[i].Born = &b
			a := f.authors[i]
			return &a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

// CountBooks is the fallback path: a direct count over the same
// underlying data the batch path sees.
func (f *fakeAuthorRepo) CountBooks(_ context.Context, authorID uuid.UUID) (int, error) {
	count := 0
	for _, b := range f.books {
		if b.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

type fakeBookSource struct {
	books []bookmodel.Book
}

func (f *fakeBookSource) GetAll(context.Context, bookmodel.BookFilter) ([]bookmodel.Book, error) {
	return append([]bookmodel.Book(nil), f.books...), nil
}

func newCatalog(t *testing.T) (*fakeAuthorRepo, *fakeBookSource) {
	t.Helper()

	herbert := model.Author{ID: uuid.New(), Name: "Frank Herbert"}
	tolkien := model.Author{ID: uuid.New(), Name: "J.R.R. Tolkien"}
	unpublished := model.Author{ID: uuid.New(), Name: "No Books Yet"}

	books := []bookmodel.Book{
		{ID: uuid.New(), Title: "Dune", Published: 1965, AuthorID: herbert.ID, Genres: []string{"scifi"}},
		{ID: uuid.New(), Title: "Dune Messiah", Published: 1969, AuthorID: herbert.ID, Genres: []string{"scifi"}},
		{ID: uuid.New(), Title: "The Hobbit", Published: 1937, AuthorID: tolkien.ID, Genres: []string{"fantasy"}},
	}

	repo := &fakeAuthorRepo{
		authors: []model.Author{herbert, tolkien, unpublished},
		books:   books,
	}
	return repo, &fakeBookSource{books: books}
}

func TestGetAllWithBookCounts(t *testing.T) {
	repo, books := newCatalog(t)
	svc := NewAuthorService(repo, books)

	result, err := svc.GetAllWithBookCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 3)

	counts := make(map[string]int)
	for _, a := range result {
		counts[a.Name] = a.BookCount
	}

	assert.Equal(t, 2, counts["Frank Herbert"])
	assert.Equal(t, 1, counts["J.R.R. Tolkien"])
	assert.Equal(t, 0, counts["No Books Yet"])
}

func TestBatchAndFallbackPathsAgree(t *testing.T) {
	repo, books := newCatalog(t)
	svc := NewAuthorService(repo, books)

	batch, err := svc.GetAllWithBookCounts(context.Background())
	require.NoError(t, err)

	// Every author resolved through the single-author fallback must
	// report the same count as the batch pass.
	for _, a := range batch {
		single, err := svc.GetWithBookCount(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.BookCount, single.BookCount, "count mismatch for %s", a.Name)
	}
}

func TestEditBornRequiresAuthentication(t *testing.T) {
	repo, books := newCatalog(t)
	svc := NewAuthorService(repo, books)

	_, err := svc.EditBorn(context.Background(), nil, "Frank Herbert", 1920)

	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Zero(t, repo.updateCalls)
}

func TestEditBornUpdatesAuthor(t *testing.T) {
	repo, books := newCatalog(t)
	svc := NewAuthorService(repo, books)
	currentUser := &usermodel.User{ID: uuid.New(), Username: "alice"}

	author, err := svc.EditBorn(context.Background(), currentUser, "Frank Herbert", 1920)
	require.NoError(t, err)
	require.NotNil(t, author)
	require.NotNil(t, author.Born)

	assert.Equal(t, 1920, *author.Born)
}

func TestEditBornUnknownAuthorIsNoOp(t *testing.T) {
	repo, books := newCatalog(t)
	svc := NewAuthorService(repo, books)
	currentUser := &usermodel.User{ID: uuid.New(), Username: "alice"}

	author, err := svc.EditBorn(context.Background(), currentUser, "Nobody", 1900)

	require.NoError(t, err)
	assert.Nil(t, author)
	assert.Zero(t, repo.createCalls, "a missing author must not be created")
	assert.Zero(t, repo.updateCalls)
}
