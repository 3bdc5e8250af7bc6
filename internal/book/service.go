package book

import (
	"context"
	"fmt"
	"time"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns one page of books. Any storage failure is reported as ErrListFailed.
func (s *Service) List(ctx context.Context, p ListParams) (Listing, error) {
	if p.Page < 1 {
		p.Page = 1
	}

	books, total, err := s.repo.List(ctx, p.Query())
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %w", ErrListFailed, err)
	}

	return Listing{
		Books:       books,
		CurrentPage: p.Page,
		TotalPages:  totalPages(total),
	}, nil
}

// Search returns every match on a single page.
func (s *Service) Search(ctx context.Context, keyword string) (Listing, error) {
	books, err := s.repo.Search(ctx, keyword)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Books: books, CurrentPage: 1, TotalPages: 1}, nil
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Add stores a new book, dating it today when no date was given.
func (s *Service) Add(ctx context.Context, in Input) (int64, error) {
	in.Categories = NormalizeCategories(in.Categories)
	if in.DateAdded == nil {
		today := truncateToDate(s.now())
		in.DateAdded = &today
	}
	return s.repo.Create(ctx, in)
}

// Update replaces every field of the book. Unlike Add, a blank date stays blank.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	in.Categories = NormalizeCategories(in.Categories)
	return s.repo.Update(ctx, id, in)
}

// Delete removes a book; missing ids are ignored.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
