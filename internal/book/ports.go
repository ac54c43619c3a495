package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for catalog storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Search(ctx context.Context, q Query) ([]Book, error)
	GetReviews(ctx context.Context, isbn string) (map[string]string, error)
	UpsertReview(ctx context.Context, isbn, username, text string) (Book, error)
	DeleteReview(ctx context.Context, isbn, username string) (Book, error)
}
