package book

import (
	"errors"
	"net/http"
	"strconv"

	"picturebooks/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Renderer writes a named HTML page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

type HTTPHandler struct {
	service *Service
	views   Renderer
}

func NewHTTPHandler(service *Service, views Renderer) *HTTPHandler {
	return &HTTPHandler{service: service, views: views}
}

type listPage struct {
	Books       []Book
	Category    string
	Sort        string
	Query       string
	CurrentPage int
	TotalPages  int
	Added       bool
	Deleted     bool
	Searching   bool
	Categories  []string
}

type bookPage struct {
	Book       Book
	Category   string
	Sort       string
	Query      string
	Categories []string
}

// Routes registers the catalog pages on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/add", h.Add)
	r.Get("/search", h.Search)
	r.Get("/book/{id}", h.Show)
	r.Get("/book/{id}/edit", h.EditForm)
	r.Post("/book/{id}/edit", h.Update)
	r.Post("/book/{id}/delete", h.Delete)
}

// List handles GET /
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := ParseListParams(query)

	listing, err := h.service.List(r.Context(), params)
	if err != nil {
		h.fail(w, r, err, "Error fetching books", "Error loading books.")
		return
	}

	h.render(w, r, "index", listPage{
		Books:       listing.Books,
		Category:    params.Category,
		Sort:        string(params.Sort),
		CurrentPage: listing.CurrentPage,
		TotalPages:  listing.TotalPages,
		Added:       query.Get("added") != "",
		Deleted:     query.Get("deleted") != "",
		Categories:  KnownCategories,
	})
}

// Add handles POST /add
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	id, err := h.service.Add(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, "Error adding book", "Error adding book.")
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("book_id", id).Msg("book added")
	http.Redirect(w, r, "/?added=1", http.StatusSeeOther)
}

// Show handles GET /book/{id}
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.showBook(w, r, "book", "Error fetching book", "Error loading book.")
}

// EditForm handles GET /book/{id}/edit
func (h *HTTPHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	h.showBook(w, r, "edit", "Error loading book for edit", "Error loading book for edit.")
}

// Update handles POST /book/{id}/edit
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(chi.URLParam(r, "id"))
	if !ok {
		httpx.TextError(w, http.StatusNotFound, "Book not found")
		return
	}

	in, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, in); err != nil {
		h.fail(w, r, err, "Error updating book", "Error updating book.")
		return
	}
	http.Redirect(w, r, "/book/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// Delete handles POST /book/{id}/delete
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	// An id that cannot exist is treated like any other missing row.
	if id, ok := ParseID(chi.URLParam(r, "id")); ok {
		if err := h.service.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err, "Error deleting book", "Error deleting book.")
			return
		}
	}
	http.Redirect(w, r, "/?deleted=1", http.StatusSeeOther)
}

// Search handles GET /search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	keyword := query.Get("q")

	listing, err := h.service.Search(r.Context(), keyword)
	if err != nil {
		h.fail(w, r, err, "Error searching books", "Error searching books.")
		return
	}

	// category and sort are carried through to the links only.
	h.render(w, r, "index", listPage{
		Books:       listing.Books,
		Category:    query.Get("category"),
		Sort:        query.Get("sort"),
		Query:       keyword,
		CurrentPage: listing.CurrentPage,
		TotalPages:  listing.TotalPages,
		Searching:   true,
		Categories:  KnownCategories,
	})
}

func (h *HTTPHandler) showBook(w http.ResponseWriter, r *http.Request, page, logMsg, userMsg string) {
	id, ok := ParseID(chi.URLParam(r, "id"))
	if !ok {
		httpx.TextError(w, http.StatusNotFound, "Book not found")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.TextError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.fail(w, r, err, logMsg, userMsg)
		return
	}

	query := r.URL.Query()
	h.render(w, r, page, bookPage{
		Book:       b,
		Category:   query.Get("category"),
		Sort:       query.Get("sort"),
		Categories: KnownCategories,
	})
}

func (h *HTTPHandler) parseForm(w http.ResponseWriter, r *http.Request) (Input, bool) {
	if err := r.ParseForm(); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Error parsing form")
		httpx.TextError(w, http.StatusBadRequest, "Invalid form.")
		return Input{}, false
	}

	in, err := ParseInput(r.PostForm)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Rejected book form")
		httpx.TextError(w, http.StatusBadRequest, "Invalid date_added, expected YYYY-MM-DD.")
		return Input{}, false
	}
	return in, true
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := h.views.Render(w, http.StatusOK, page, data); err != nil {
		h.fail(w, r, err, "Error rendering "+page, "Error rendering page.")
	}
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error, logMsg, userMsg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(logMsg)
	httpx.TextError(w, http.StatusInternalServerError, userMsg)
}
