package book

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookColumns = []string{"id", "title", "author", "illustrator", "isbn", "description", "date_added", "categories"}

var errInternal = errors.New("internal error")

func newMockRepo(t *testing.T) (*PostgresRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresRepo(mock, time.Second), mock
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPostgresRepo_List(t *testing.T) {
	t.Parallel()

	t.Run("category filter and title sort", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE $1 = ANY(categories) ORDER BY title ASC LIMIT $2 OFFSET $3")).
			WithArgs("fantasy", 15, 15).
			WillReturnRows(pgxmock.NewRows(bookColumns).
				AddRow(int64(1), "Abiyoyo", "Pete Seeger", "Michael Hays", "978-0689714344", "", day(2024, 1, 2), []string{"fantasy", "music"}).
				AddRow(int64(2), "Zog", "Julia Donaldson", "Axel Scheffler", "978-0545224017", "A dragon.", day(2024, 3, 4), []string{"fantasy"}))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM picturebooks WHERE $1 = ANY(categories)")).
			WithArgs("fantasy").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(17)))

		books, total, err := repo.List(context.Background(), ListQuery{Category: "fantasy", Sort: SortTitle, Limit: 15, Offset: 15})

		require.NoError(t, err)
		assert.Equal(t, 17, total)
		require.Len(t, books, 2)
		assert.Equal(t, "Abiyoyo", books[0].Title)
		assert.Equal(t, []string{"fantasy", "music"}, books[0].Categories)
		assert.Equal(t, day(2024, 3, 4), books[1].DateAdded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter binds only pagination", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM picturebooks ORDER BY date_added DESC LIMIT $1 OFFSET $2")).
			WithArgs(15, 0).
			WillReturnRows(pgxmock.NewRows(bookColumns))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM picturebooks")).
			WithArgs().
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

		books, total, err := repo.List(context.Background(), ListQuery{Sort: SortRecent, Limit: 15})

		require.NoError(t, err)
		assert.Empty(t, books)
		assert.NotNil(t, books)
		assert.Equal(t, 0, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("data query fails", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT").
			WithArgs(15, 0).
			WillReturnError(errInternal)

		_, _, err := repo.List(context.Background(), ListQuery{Limit: 15})

		assert.ErrorIs(t, err, errInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count query fails", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("LIMIT").
			WithArgs("art", 15, 30).
			WillReturnRows(pgxmock.NewRows(bookColumns))
		mock.ExpectQuery(regexp.QuoteMeta("COUNT(*)")).
			WithArgs("art").
			WillReturnError(errInternal)

		books, _, err := repo.List(context.Background(), ListQuery{Category: "art", Limit: 15, Offset: 30})

		assert.ErrorIs(t, err, errInternal)
		assert.Nil(t, books)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_Search(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (title ILIKE $1 OR author ILIKE $2 OR illustrator ILIKE $3 OR description ILIKE $4)")).
		WithArgs("%cat%", "%cat%", "%cat%", "%cat%").
		WillReturnRows(pgxmock.NewRows(bookColumns).
			AddRow(int64(3), "The Cat in the Hat", "Dr. Seuss", "Dr. Seuss", "978-0394800011", "", day(2023, 5, 6), []string{"classic"}))

	books, err := repo.Search(context.Background(), "cat")

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(3), books[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM picturebooks WHERE id = $1")).
			WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(bookColumns).
				AddRow(int64(9), "Frederick", "Leo Lionni", "Leo Lionni", "978-0394826141", "A mouse poet.", day(2022, 2, 2), []string{"poetry", "animals"}))

		b, err := repo.GetByID(context.Background(), 9)

		require.NoError(t, err)
		assert.Equal(t, "Frederick", b.Title)
		assert.Equal(t, []string{"poetry", "animals"}, b.Categories)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 404)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnError(errInternal)

		_, err := repo.GetByID(context.Background(), 1)

		assert.ErrorIs(t, err, errInternal)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_Create(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	in := Input{
		Title: "Owl Moon", Author: "Jane Yolen", Illustrator: "John Schoenherr",
		ISBN: "978-0399214578", DateAdded: day(2024, 7, 1), Categories: []string{"nature"},
	}
	mock.ExpectQuery(`INSERT INTO picturebooks .* RETURNING id`).
		WithArgs("Owl Moon", "Jane Yolen", "John Schoenherr", "978-0399214578", "", day(2024, 7, 1), []string{"nature"}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := repo.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Update(t *testing.T) {
	t.Parallel()

	t.Run("blank date is written as NULL", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE picturebooks SET title = $1, author = $2, illustrator = $3, isbn = $4, description = $5, date_added = $6, categories = $7 WHERE id = $8")).
			WithArgs("Swimmy", "Leo Lionni", "Leo Lionni", "", "", (*time.Time)(nil), []string{}, int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(context.Background(), 5, Input{Title: "Swimmy", Author: "Leo Lionni", Illustrator: "Leo Lionni", Categories: []string{}})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE picturebooks").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(5)).
			WillReturnError(errInternal)

		err := repo.Update(context.Background(), 5, Input{})

		assert.ErrorIs(t, err, errInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_Delete(t *testing.T) {
	t.Parallel()

	t.Run("missing row is not an error", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM picturebooks WHERE id = $1")).
			WithArgs(int64(77)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, repo.Delete(context.Background(), 77))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM picturebooks").
			WithArgs(int64(1)).
			WillReturnError(errInternal)

		assert.ErrorIs(t, repo.Delete(context.Background(), 1), errInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
