package auth

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/user"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (user.User, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(username string) (string, time.Time, error)
}

type Service struct {
	users  CredentialVerifier
	tokens TokenIssuer
}

func NewService(users CredentialVerifier, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Session is the result of a successful login.
type Session struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Login verifies the credentials and issues a token. Any credential failure,
// whether the user is unknown or the password is wrong, is ErrUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	u, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}

	token, expiresAt, err := s.tokens.Issue(u.Username)
	if err != nil {
		return Session{}, err
	}
	return Session{Username: u.Username, Token: token, ExpiresAt: expiresAt}, nil
}
