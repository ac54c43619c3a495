package book

import (
	"context"
	"maps"
	"strings"
	"sync"
)

// MemoryRepo is the in-process catalog. All reads return copies, so callers
// never share a reviews map with the store.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]*Book
	order []string
}

// NewMemoryRepo builds a catalog from seed. A repeated ISBN replaces the
// earlier record but keeps its position.
func NewMemoryRepo(seed []Book) *MemoryRepo {
	r := &MemoryRepo{books: make(map[string]*Book, len(seed))}
	for _, b := range seed {
		stored := b.clone()
		if _, exists := r.books[b.ISBN]; !exists {
			r.order = append(r.order, b.ISBN)
		}
		r.books[b.ISBN] = &stored
	}
	return r
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]Book, 0, len(r.order))
	for _, isbn := range r.order {
		books = append(books, r.books[isbn].clone())
	}
	return books, nil
}

func (r *MemoryRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b.clone(), nil
}

func (r *MemoryRepo) Search(ctx context.Context, q Query) ([]Book, error) {
	author := strings.ToLower(q.Author)
	title := strings.ToLower(q.Title)

	r.mu.RLock()
	defer r.mu.RUnlock()

	books := []Book{}
	for _, isbn := range r.order {
		b := r.books[isbn]
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		books = append(books, b.clone())
	}
	return books, nil
}

func (r *MemoryRepo) GetReviews(ctx context.Context, isbn string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return nil, ErrNotFound
	}
	return maps.Clone(b.Reviews), nil
}

func (r *MemoryRepo) UpsertReview(ctx context.Context, isbn, username, text string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	if b.Reviews == nil {
		b.Reviews = map[string]string{}
	}
	b.Reviews[username] = text
	return b.clone(), nil
}

func (r *MemoryRepo) DeleteReview(ctx context.Context, isbn, username string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	if _, ok := b.Reviews[username]; !ok {
		return Book{}, ErrReviewNotFound
	}
	delete(b.Reviews, username)
	return b.clone(), nil
}
