package book

import (
	"errors"
	"maps"
)

var (
	// ErrNotFound is returned when no book has the requested ISBN.
	ErrNotFound = errors.New("book not found")
	// ErrReviewNotFound is returned when the book exists but the user has no review on it.
	ErrReviewNotFound = errors.New("review not found")
)

// Book is a catalog entry. Reviews maps a username to that user's review.
type Book struct {
	ISBN    string            `json:"isbn"`
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Reviews map[string]string `json:"reviews"`
}

func (b Book) clone() Book {
	out := b
	out.Reviews = make(map[string]string, len(b.Reviews))
	maps.Copy(out.Reviews, b.Reviews)
	return out
}

// Query filters a catalog search. Empty fields match everything; non-empty
// fields are case-insensitive substrings and all must match.
type Query struct {
	Author string
	Title  string
}

// SeedBooks returns the books the catalog starts with.
func SeedBooks() []Book {
	return []Book{
		{ISBN: "12345", Title: "Harry Potter", Author: "JK Rowling", Reviews: map[string]string{}},
		{ISBN: "67890", Title: "The Hobbit", Author: "JRR Tolkien", Reviews: map[string]string{}},
	}
}
