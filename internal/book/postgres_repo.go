package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type PostgresRepo struct {
	db      Querier
	timeout time.Duration
}

// NewPostgresRepo builds a repository on db. A zero timeout leaves query
// deadlines to the caller's context.
func NewPostgresRepo(db Querier, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	data, count := buildListQueries(q)

	books, err := r.selectBooks(ctx, data)
	if err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var total int64
	if err := r.db.QueryRow(timeoutCtx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	return books, int(total), nil
}

func (r *PostgresRepo) Search(ctx context.Context, keyword string) ([]Book, error) {
	return r.selectBooks(ctx, buildSearchQuery(keyword))
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query, args, err := psql.Select(columns...).From(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Book{}, fmt.Errorf("build get query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (int64, error) {
	query, args, err := psql.Insert(tableName).
		Columns("title", "author", "illustrator", "isbn", "description", "date_added", "categories").
		Values(in.Title, in.Author, in.Illustrator, in.ISBN, in.Description, in.DateAdded, in.Categories).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var id int64
	if err := r.db.QueryRow(timeoutCtx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	return id, nil
}

// Update overwrites every column of the row. A nil DateAdded is stored as NULL.
func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) error {
	query, args, err := psql.Update(tableName).
		Set("title", in.Title).
		Set("author", in.Author).
		Set("illustrator", in.Illustrator).
		Set("isbn", in.ISBN).
		Set("description", in.Description).
		Set("date_added", in.DateAdded).
		Set("categories", in.Categories).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, query, args...); err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

// Delete removes the row if present. Deleting a missing id is not an error.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, query, args...); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

func (r *PostgresRepo) selectBooks(ctx context.Context, b sq.SelectBuilder) ([]Book, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Illustrator, &b.ISBN, &b.Description,
		&b.DateAdded, &b.Categories,
	)
	return b, err
}
