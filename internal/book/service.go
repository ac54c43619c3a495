package book

import (
	"context"
)

// Service provides catalog reads and review writes.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book in the catalog.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// FindByAuthor returns books whose author contains author, ignoring case.
func (s *Service) FindByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.repo.Search(ctx, Query{Author: author})
}

// FindByTitle returns books whose title contains title, ignoring case.
func (s *Service) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return s.repo.Search(ctx, Query{Title: title})
}

func (s *Service) GetReviews(ctx context.Context, isbn string) (map[string]string, error) {
	return s.repo.GetReviews(ctx, isbn)
}

// UpsertReview stores text as username's review of the book, replacing any
// earlier review by the same user.
func (s *Service) UpsertReview(ctx context.Context, isbn, username, text string) (Book, error) {
	return s.repo.UpsertReview(ctx, isbn, username, text)
}

// DeleteReview removes username's review of the book.
func (s *Service) DeleteReview(ctx context.Context, isbn, username string) (Book, error) {
	return s.repo.DeleteReview(ctx, isbn, username)
}
