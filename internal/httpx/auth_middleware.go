package httpx

import (
	"net/http"
	"strings"

	"bookstore/internal/platform/metrics"

	"github.com/rs/zerolog/log"
)

// TokenVerifier resolves a bearer token to the username it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the verified username to the context of the ones it lets through.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, r, "Missing bearer token")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				unauthorized(w, r, "Missing bearer token")
				return
			}

			username, err := verifier.Verify(token)
			if err != nil {
				log.Debug().Err(err).Str("request_id", RequestIDFrom(r)).Msg("token rejected")
				unauthorized(w, r, "Invalid or expired token")
				return
			}

			ctx := ContextWithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	metrics.ObserveTokenRejected()
	w.Header().Set("WWW-Authenticate", `Bearer realm="bookstore"`)
	JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}
