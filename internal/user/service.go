package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

type Service struct {
	repo   Repository
	hasher PasswordHasher
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher, now: time.Now}
}

// Register creates a user with a hashed password. The raw password is never stored.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrValidation
	}

	hashedPassword, err := s.hasher.HashPassword(ctx, password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	newUser := &User{
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return User{}, err
	}
	return *newUser, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// VerifyCredentials returns the user when password matches. Unknown users and
// wrong passwords both yield ErrInvalidCredentials, and both pay for one
// hash comparison.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return User{}, err
		}
		s.hasher.VerifyPassword(ctx, s.dummy(), password)
		return User{}, ErrInvalidCredentials
	}
	if !s.hasher.VerifyPassword(ctx, u.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// dummy is hashed once, detached from any request so a cancelled caller
// cannot leave it empty.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.HashPassword(context.Background(), "not-a-real-password")
	})
	return s.dummyHash
}
