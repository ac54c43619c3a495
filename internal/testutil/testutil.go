package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"bookstore/internal/platform/crypto"
)

// TestSecret signs every token the helpers below produce.
const TestSecret = "test-secret"

// GenerateTestToken returns a token for username valid for the next hour.
func GenerateTestToken(secret, username string) string {
	return issueAt(secret, username, time.Now())
}

// GenerateExpiredToken returns a token for username that expired a minute ago.
func GenerateExpiredToken(secret, username string) string {
	return issueAt(secret, username, time.Now().Add(-crypto.DefaultTokenTTL-time.Minute))
}

func issueAt(secret, username string, at time.Time) string {
	tokens, err := crypto.NewTokenService(secret, crypto.WithClock(func() time.Time { return at }))
	if err != nil {
		panic(err)
	}
	token, _, err := tokens.Issue(username)
	if err != nil {
		panic(err)
	}
	return token
}

// NewRequest creates a new HTTP request with body encoded as JSON.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth is NewRequest plus a bearer token, when token is set.
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// ErrorCode extracts error.code from an error envelope, or "" when absent.
func ErrorCode(w *httptest.ResponseRecorder) string {
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		return ""
	}
	return resp.Error.Code
}
