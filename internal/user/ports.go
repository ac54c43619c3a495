package user

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=user

// Repository stores users keyed by username. Create must fail with
// ErrAlreadyExists when the username is taken.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	Count(ctx context.Context) (int, error)
}

// PasswordHasher hashes and checks raw passwords.
type PasswordHasher interface {
	HashPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, hash, plain string) bool
}
