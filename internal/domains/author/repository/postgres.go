package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-server/internal/domains/author/model"
	"library-server/pkg/cache"
)

// postgresRepository implements RepositoryInterface on pgxpool, with a
// Redis cache in front of the by-name lookup (the hot path of addBook).
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorNameKeyPrefix = "author:name:"
	cacheTTL            = 15 * time.Minute
)

// Create inserts a new author. Born stays null until editAuthor sets it.
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, born)
        VALUES ($1, $2)
        RETURNING id, name, born, created_at, updated_at
    `

	var created model.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Born).Scan(
		&created.ID,
		&created.Name,
		&created.Born,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `
        SELECT id, name, born, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	var a model.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Born,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

// GetByName retrieves an author by exact name with caching.
func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	cacheKey := authorNameKeyPrefix + name

	var a model.Author
	cached, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && cached {
		return &a, nil
	}

	query := `
        SELECT id, name, born, created_at, updated_at
        FROM authors
        WHERE name = $1
    `

	err = r.pool.QueryRow(ctx, query, name).Scan(
		&a.ID,
		&a.Name,
		&a.Born,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT id, name, born, created_at, updated_at
        FROM authors
        ORDER BY created_at
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

// UpdateBorn sets the birth year, the only mutable author field.
func (r *postgresRepository) UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*model.Author, error) {
	query := `
        UPDATE authors
        SET born = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, name, born, created_at, updated_at
    `

	var updated model.Author
	err := r.pool.QueryRow(ctx, query, born, id).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Born,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	_ = r.cache.Delete(ctx, authorNameKeyPrefix+updated.Name)

	return &updated, nil
}

// CountBooks returns the number of books referencing this author.
func (r *postgresRepository) CountBooks(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}
