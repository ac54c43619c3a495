package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestNewTokenService_EmptySecret(t *testing.T) {
	s, err := NewTokenService("")
	assert.ErrorIs(t, err, ErrEmptySecret)
	assert.Nil(t, s)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	s, err := NewTokenService("test-secret-key")
	require.NoError(t, err)

	token, expiresAt, err := s.Issue("tess")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	username, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "tess", username)
}

func TestTokenService_UniqueTokens(t *testing.T) {
	s, err := NewTokenService("test-secret-key")
	require.NoError(t, err)

	token1, _, err1 := s.Issue("tess")
	token2, _, err2 := s.Issue("tess")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, token1, token2)
}

func TestTokenService_Lifecycle(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	s, err := NewTokenService("test-secret-key", WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := s.Issue("tess")
	require.NoError(t, err)

	tests := []struct {
		name    string
		offset  time.Duration
		wantErr error
	}{
		{name: "just issued", offset: 0},
		{name: "59 minutes", offset: 59 * time.Minute},
		{name: "seconds before expiry", offset: time.Hour - 5*time.Second},
		{name: "seconds after expiry", offset: time.Hour + 5*time.Second, wantErr: ErrTokenExpired},
		{name: "61 minutes", offset: 61 * time.Minute, wantErr: ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = issuedAt.Add(tt.offset)
			username, err := s.Verify(token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "tess", username)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, username)
		})
	}
}

func TestTokenService_Verify_Failures(t *testing.T) {
	s, err := NewTokenService("test-secret-key")
	require.NoError(t, err)

	t.Run("invalid signature", func(t *testing.T) {
		other, err := NewTokenService("wrong-secret")
		require.NoError(t, err)
		token, _, err := other.Issue("tess")
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, ErrTokenSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, _, err := s.Issue("tess")
		require.NoError(t, err)
		forged, _, err := mustService(t, "attacker").Issue("mallory")
		require.NoError(t, err)

		parts := splitToken(token)
		forgedParts := splitToken(forged)
		_, err = s.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := s.Verify("not.a.valid.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := s.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		c := Claims{
			Username: "tess",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString([]byte("test-secret-key"))
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		c := Claims{Username: "tess"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret-key"))
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		c := Claims{
			Username: "tess",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret-key"))
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func mustService(t *testing.T, secret string) *TokenService {
	t.Helper()
	s, err := NewTokenService(secret)
	require.NoError(t, err)
	return s
}

func splitToken(token string) []string {
	return strings.Split(token, ".")
}
