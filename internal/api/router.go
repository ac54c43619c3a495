package api

import (
	"context"
	"net/http"
	"os"
	"time"

	"bookstore/internal/auth"
	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/httpx"
	"bookstore/internal/platform/metrics"
	"bookstore/internal/review"
	"bookstore/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Deps are the handlers and collaborators the router mounts.
type Deps struct {
	Books    *book.HTTPHandler
	Users    *user.HTTPHandler
	Auth     *auth.HTTPHandler
	Reviews  *review.HTTPHandler
	Verifier httpx.TokenVerifier

	// Ready reports whether the process can serve traffic. Nil means always ready.
	Ready func(ctx context.Context) error
}

// NewRouter creates and configures the chi router.
func NewRouter(cfg *config.Config, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(metrics.InstrumentHandler)
	r.Use(httpx.SecurityHeadersMiddleware(cfg.EnableHSTS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", readyHandler(deps.Ready))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/books", func(r chi.Router) {
		r.Get("/", deps.Books.List)
		r.Get("/isbn/{isbn}", deps.Books.GetByISBN)
		r.Get("/author/{author}", deps.Books.ListByAuthor)
		r.Get("/title/{title}", deps.Books.ListByTitle)
		r.Get("/review/{isbn}", deps.Books.GetReviews)
	})

	r.Post("/register", deps.Users.Register)
	r.Post("/login", deps.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(httpx.AuthMiddleware(deps.Verifier))
		r.Post("/review/{isbn}", deps.Reviews.Upsert)
		r.Delete("/review/{isbn}", deps.Reviews.Delete)
	})

	if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
		log.Info().Str("dir", cfg.StaticDir).Msg("serving static files")
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}

func readyHandler(ready func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := ready(ctx); err != nil {
				log.Warn().Err(err).Msg("readiness check failed")
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
