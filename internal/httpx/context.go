package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	usernameKey     contextKey = "username"
	usernameSinkKey contextKey = "usernameSink"
	requestIDKey    contextKey = "requestID"
)

// UsernameFrom retrieves the verified username from the request context.
func UsernameFrom(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUsername returns a new context carrying the verified username.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	if sink, ok := ctx.Value(usernameSinkKey).(*string); ok {
		*sink = username
	}
	return context.WithValue(ctx, usernameKey, username)
}

// withUsernameSink lets an outer middleware observe the username attached
// further down the chain.
func withUsernameSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, usernameSinkKey, sink)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
