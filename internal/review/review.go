package review

import (
	"context"
	"errors"
	"strings"

	"bookstore/internal/book"
)

var ErrEmptyReview = errors.New("review text is required")

// Store is the part of the catalog that holds reviews.
type Store interface {
	UpsertReview(ctx context.Context, isbn, username, text string) (book.Book, error)
	DeleteReview(ctx context.Context, isbn, username string) (book.Book, error)
}

// Service writes reviews on behalf of an already authenticated reviewer.
// The reviewer is always passed in by the caller from the verified identity.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Write adds or replaces reviewer's review of the book.
func (s *Service) Write(ctx context.Context, isbn, reviewer, text string) (book.Book, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return book.Book{}, ErrEmptyReview
	}
	return s.store.UpsertReview(ctx, isbn, reviewer, text)
}

// Remove deletes reviewer's review of the book.
func (s *Service) Remove(ctx context.Context, isbn, reviewer string) (book.Book, error) {
	return s.store.DeleteReview(ctx, isbn, reviewer)
}
