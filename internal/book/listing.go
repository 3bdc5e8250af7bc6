package book

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const tableName = "picturebooks"

var columns = []string{
	"id", "title", "author", "illustrator", "isbn", "description", "date_added", "categories",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// withCategory adds the only filter predicate a listing supports.
func withCategory(b sq.SelectBuilder, category string) sq.SelectBuilder {
	if category != "" {
		b = b.Where(sq.Expr("? = ANY(categories)", category))
	}
	return b
}

// buildListQueries returns the page query and the matching count query.
// The count query shares the filter but carries no ordering or pagination.
func buildListQueries(q ListQuery) (data, count sq.SelectBuilder) {
	data = withCategory(psql.Select(columns...).From(tableName), q.Category)

	switch q.Sort {
	case SortRecent:
		data = data.OrderBy("date_added DESC")
	case SortTitle:
		data = data.OrderBy("title ASC")
	}

	data = data.Suffix("LIMIT ? OFFSET ?", q.Limit, q.Offset)
	count = withCategory(psql.Select("COUNT(*)").From(tableName), q.Category)
	return data, count
}

func buildSearchQuery(keyword string) sq.SelectBuilder {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	return psql.Select(columns...).From(tableName).Where(sq.Or{
		sq.ILike{"title": pattern},
		sq.ILike{"author": pattern},
		sq.ILike{"illustrator": pattern},
		sq.ILike{"description": pattern},
	})
}

// totalPages is ceil(total / PageSize); zero rows means zero pages.
func totalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}
