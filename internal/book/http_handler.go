package book

import (
	"bookstore/internal/httpx"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
// @Summary List books
// @Description Get every book in the catalog
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, books)
}

// GetByISBN handles GET /books/isbn/{isbn}
// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/isbn/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ISBN is required", nil)
		return
	}

	book, err := h.service.GetByISBN(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, book)
}

// ListByAuthor handles GET /books/author/{author}
// @Summary Find books by author
// @Description Case-insensitive substring match on the author
// @Tags books
// @Produce json
// @Param author path string true "Author name or part of it"
// @Success 200 {array} Book
// @Router /books/author/{author} [get]
func (h *HTTPHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.FindByAuthor(r.Context(), strings.TrimSpace(chi.URLParam(r, "author")))
	if err != nil {
		internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, books)
}

// ListByTitle handles GET /books/title/{title}
// @Summary Find books by title
// @Description Case-insensitive substring match on the title
// @Tags books
// @Produce json
// @Param title path string true "Title or part of it"
// @Success 200 {array} Book
// @Router /books/title/{title} [get]
func (h *HTTPHandler) ListByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.FindByTitle(r.Context(), strings.TrimSpace(chi.URLParam(r, "title")))
	if err != nil {
		internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, books)
}

// GetReviews handles GET /books/review/{isbn}
// @Summary Get book reviews
// @Description Reviews keyed by the username that wrote them
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/review/{isbn} [get]
func (h *HTTPHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ISBN is required", nil)
		return
	}

	reviews, err := h.service.GetReviews(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, reviews)
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("catalog request failed")
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
