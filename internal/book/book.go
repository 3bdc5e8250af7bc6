package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrListFailed wraps any storage failure while building a listing page.
var ErrListFailed = errors.New("listing failed")

// DateLayout is the wire format of date_added in forms and templates.
const DateLayout = "2006-01-02"

// Book represents a picture book in the collection.
type Book struct {
	ID          int64
	Title       string
	Author      string
	Illustrator string
	ISBN        string
	Description string
	DateAdded   *time.Time
	Categories  []string
}

// Input carries the editable fields of a book as submitted by a form.
// A nil DateAdded means the field was left blank.
type Input struct {
	Title       string
	Author      string
	Illustrator string
	ISBN        string
	Description string
	DateAdded   *time.Time
	Categories  []string
}

// Listing is one rendered page of books.
type Listing struct {
	Books       []Book
	CurrentPage int
	TotalPages  int
}

// KnownCategories are offered as checkboxes on the add and edit forms.
// Stored categories are free text; this list only drives the UI.
var KnownCategories = []string{
	"animals",
	"art",
	"bedtime",
	"classic",
	"family",
	"fantasy",
	"friendship",
	"humor",
	"nature",
	"poetry",
}
