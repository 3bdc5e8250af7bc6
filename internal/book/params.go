package book

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// PageSize is the fixed number of books on a listing page.
const PageSize = 15

// MaxPage is the largest page whose offset still fits in an int.
const MaxPage = math.MaxInt/PageSize + 1

// Sort selects the ordering of a listing.
type Sort string

const (
	SortNone   Sort = ""
	SortRecent Sort = "recent"
	SortTitle  Sort = "title"
)

// ParseSort maps a raw query value onto a known Sort. Anything else is SortNone.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortRecent, SortTitle:
		return Sort(raw)
	default:
		return SortNone
	}
}

// ListParams are the typed listing parameters of GET /.
type ListParams struct {
	Category string
	Sort     Sort
	Page     int
}

// ListQuery is what the repository needs to fetch one page.
type ListQuery struct {
	Category string
	Sort     Sort
	Limit    int
	Offset   int
}

// Query converts page-based params into a limit/offset query.
func (p ListParams) Query() ListQuery {
	page := min(max(p.Page, 1), MaxPage)
	return ListQuery{
		Category: p.Category,
		Sort:     p.Sort,
		Limit:    PageSize,
		Offset:   (page - 1) * PageSize,
	}
}

// ParseListParams reads category, sort and page from a query string.
// Missing, non-numeric or non-positive pages become 1; pages beyond MaxPage
// become MaxPage, which is still past any real data.
func ParseListParams(q url.Values) ListParams {
	page, err := strconv.Atoi(q.Get("page"))
	switch {
	case errors.Is(err, strconv.ErrRange) && page > 0:
		page = MaxPage
	case err != nil || page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	return ListParams{
		Category: q.Get("category"),
		Sort:     ParseSort(q.Get("sort")),
		Page:     page,
	}
}

// ParseInput reads the book form. Only date_added can fail to parse.
func ParseInput(form url.Values) (Input, error) {
	in := Input{
		Title:       form.Get("title"),
		Author:      form.Get("author"),
		Illustrator: form.Get("illustrator"),
		ISBN:        form.Get("isbn"),
		Description: form.Get("description"),
		Categories:  NormalizeCategories(lo.Flatten([][]string{form["categories"], form["categories[]"]})),
	}

	if raw := strings.TrimSpace(form.Get("date_added")); raw != "" {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return Input{}, fmt.Errorf("invalid date_added %q: %w", raw, err)
		}
		in.DateAdded = &d
	}
	return in, nil
}

// NormalizeCategories always returns a non-nil slice with blank labels removed.
// A single submitted value therefore becomes a one-element slice.
func NormalizeCategories(values []string) []string {
	out := lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	}))
	if out == nil {
		return []string{}
	}
	return out
}

// ParseID parses a path identifier. ok is false for anything that cannot be a stored id.
func ParseID(raw string) (id int64, ok bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
