package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "library-server/internal/domains/author/model"
	"library-server/internal/domains/book/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Create inserts the book and returns it with the author populated.
// The author row must already exist; the foreign key is the backstop.
func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, published, author_id, genres)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, published, author_id, genres, created_at
    `

	var created model.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.Published, b.AuthorID, b.Genres).Scan(
		&created.ID,
		&created.Title,
		&created.Published,
		&created.AuthorID,
		&created.Genres,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, model.ErrInvalidAuthor
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	created.Author = b.Author
	return &created, nil
}

// GetAll returns all books joined with their authors. Filters compose
// with AND; an empty filter field means no restriction.
func (r *postgresRepository) GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT b.id, b.title, b.published, b.author_id, b.genres, b.created_at,
               a.id, a.name, a.born, a.created_at, a.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE 1=1
    `)

	args := []interface{}{}
	argPos := 1

	if filter.Author != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.name = $%d", argPos))
		args = append(args, filter.Author)
		argPos++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(b.genres)", argPos))
		args = append(args, filter.Genre)
		argPos++
	}

	queryBuilder.WriteString(" ORDER BY b.created_at")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var a authormodel.Author
		err := rows.Scan(
			&b.ID, &b.Title, &b.Published, &b.AuthorID, &b.Genres, &b.CreatedAt,
			&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		b.Author = &a
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}
