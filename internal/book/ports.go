package book

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:generate mockgen -destination=mock_repository.go -package=book picturebooks/internal/book Repository

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Book, int, error)
	Search(ctx context.Context, keyword string) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, in Input) (int64, error)
	Update(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
}

// Querier is the query-executor capability the Postgres repository runs on.
// *pgxpool.Pool satisfies it, and so does a pgxmock pool in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
