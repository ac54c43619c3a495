package review

import (
	"bookstore/internal/book"
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

// upsertReviewReq has no reviewer field on purpose; a "username" sent by the
// client is dropped by the decoder.
type upsertReviewReq struct {
	Review string `json:"review" validate:"required,max=4000"`
}

// Upsert handles POST /review/{isbn}
// @Summary Add or update a review
// @Description Store the caller's review of a book, replacing their earlier one
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param isbn path string true "Book ISBN"
// @Param request body upsertReviewReq true "Review"
// @Success 200 {object} map[string]any
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /review/{isbn} [post]
func (h *HTTPHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	reviewer := httpx.UsernameFrom(r)
	if reviewer == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ISBN is required", nil)
		return
	}

	var req upsertReviewReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.service.Write(r.Context(), isbn, reviewer, req.Review)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", reviewer).Str("isbn", isbn).Msg("review saved")
	httpx.JSONOK(w, map[string]any{
		"message": "Review added/updated successfully",
		"book":    updated,
		"review":  updated.Reviews[reviewer],
	})
}

// Delete handles DELETE /review/{isbn}
// @Summary Delete own review
// @Description Remove the caller's review of a book
// @Tags reviews
// @Produce json
// @Security Bearer
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]any
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /review/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewer := httpx.UsernameFrom(r)
	if reviewer == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ISBN is required", nil)
		return
	}

	updated, err := h.service.Remove(r.Context(), isbn, reviewer)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", reviewer).Str("isbn", isbn).Msg("review deleted")
	httpx.JSONOK(w, map[string]any{
		"message": "Review deleted successfully",
		"book":    updated,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrEmptyReview):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Review text is required", nil)
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, book.ErrReviewNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found", nil)
	default:
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("review request failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
