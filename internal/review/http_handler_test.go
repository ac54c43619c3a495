package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookstore/internal/book"
	"bookstore/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*HTTPHandler, *book.MemoryRepo) {
	repo := book.NewMemoryRepo(book.SeedBooks())
	return NewHTTPHandler(NewService(book.NewService(repo))), repo
}

func newRequest(method, isbn, username, body string) *http.Request {
	r := httptest.NewRequest(method, "/review/"+isbn, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("isbn", isbn)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if username != "" {
		ctx = httpx.ContextWithUsername(ctx, username)
	}
	return r.WithContext(ctx)
}

func TestHTTPHandler_Upsert(t *testing.T) {
	t.Run("adds review for caller", func(t *testing.T) {
		h, repo := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "alice", `{"review":"Great book!"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Message string    `json:"message"`
			Book    book.Book `json:"book"`
			Review  string    `json:"review"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Review added/updated successfully", resp.Message)
		assert.Equal(t, "Great book!", resp.Review)
		assert.Equal(t, map[string]string{"alice": "Great book!"}, resp.Book.Reviews)

		reviews, err := repo.GetReviews(context.Background(), "12345")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"alice": "Great book!"}, reviews)
	})

	t.Run("second post replaces", func(t *testing.T) {
		h, repo := newTestHandler()
		h.Upsert(httptest.NewRecorder(), newRequest(http.MethodPost, "12345", "alice", `{"review":"first"}`))
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "alice", `{"review":"second"}`))

		require.Equal(t, http.StatusOK, w.Code)
		reviews, _ := repo.GetReviews(context.Background(), "12345")
		assert.Equal(t, map[string]string{"alice": "second"}, reviews)
	})

	t.Run("username in body is ignored", func(t *testing.T) {
		h, repo := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "alice", `{"review":"mine","username":"bob"}`))

		require.Equal(t, http.StatusOK, w.Code)
		reviews, _ := repo.GetReviews(context.Background(), "12345")
		assert.Equal(t, map[string]string{"alice": "mine"}, reviews)
		assert.NotContains(t, reviews, "bob")
	})

	t.Run("no identity", func(t *testing.T) {
		h, _ := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "", `{"review":"x"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		h, _ := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "00000", "alice", `{"review":"x"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"NOT_FOUND"`)
	})

	t.Run("missing review text", func(t *testing.T) {
		h, _ := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "alice", `{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("blank review text", func(t *testing.T) {
		h, _ := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "alice", `{"review":"   "}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("invalid json", func(t *testing.T) {
		h, _ := newTestHandler()
		w := httptest.NewRecorder()

		h.Upsert(w, newRequest(http.MethodPost, "12345", "alice", `{"review":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	tests := []struct {
		name     string
		isbn     string
		username string
		seed     bool
		wantCode int
		wantBody string
	}{
		{name: "own review", isbn: "12345", username: "alice", seed: true, wantCode: http.StatusOK, wantBody: "Review deleted successfully"},
		{name: "no review by caller", isbn: "12345", username: "bob", seed: true, wantCode: http.StatusNotFound, wantBody: "REVIEW_NOT_FOUND"},
		{name: "unknown book", isbn: "00000", username: "alice", wantCode: http.StatusNotFound, wantBody: `"NOT_FOUND"`},
		{name: "no identity", isbn: "12345", wantCode: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newTestHandler()
			if tt.seed {
				_, err := repo.UpsertReview(context.Background(), "12345", "alice", "Great book!")
				require.NoError(t, err)
			}
			w := httptest.NewRecorder()

			h.Delete(w, newRequest(http.MethodDelete, tt.isbn, tt.username, ""))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}

	t.Run("other reviews survive", func(t *testing.T) {
		h, repo := newTestHandler()
		ctx := context.Background()
		_, _ = repo.UpsertReview(ctx, "12345", "alice", "a")
		_, _ = repo.UpsertReview(ctx, "12345", "bob", "b")

		w := httptest.NewRecorder()
		h.Delete(w, newRequest(http.MethodDelete, "12345", "bob", ""))

		require.Equal(t, http.StatusOK, w.Code)
		reviews, _ := repo.GetReviews(ctx, "12345")
		assert.Equal(t, map[string]string{"alice": "a"}, reviews)
	})
}
