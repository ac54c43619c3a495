package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/api"
	"bookstore/internal/auth"
	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/platform/crypto"
	"bookstore/internal/platform/logger"
	"bookstore/internal/platform/metrics"
	"bookstore/internal/review"
	"bookstore/internal/user"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("failed to initialise logger")
	}

	handler, err := newHandler(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// newHandler constructs the stores, services and router for cfg.
func newHandler(cfg *config.Config) (http.Handler, error) {
	tokens, err := crypto.NewTokenService(cfg.JWTSecret, crypto.WithTTL(cfg.TokenTTL))
	if err != nil {
		return nil, err
	}
	hasher := crypto.NewHasher(cfg.BcryptCost, cfg.HashWorkers)

	bookRepository := book.NewMemoryRepo(book.SeedBooks())
	userRepository := user.NewMemoryRepo()

	bookService := book.NewService(bookRepository)
	userService := user.NewService(userRepository, hasher)
	authService := auth.NewService(userService, tokens)
	reviewService := review.NewService(bookService)

	err = metrics.RegisterGaugeFunc("users", "registered", "Number of registered users.", func() float64 {
		n, err := userService.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(n)
	})
	if err != nil {
		return nil, fmt.Errorf("register users gauge: %w", err)
	}

	return api.NewRouter(cfg, api.Deps{
		Books:    book.NewHTTPHandler(bookService),
		Users:    user.NewHTTPHandler(userService),
		Auth:     auth.NewHTTPHandler(authService),
		Reviews:  review.NewHTTPHandler(reviewService),
		Verifier: tokens,
		Ready: func(ctx context.Context) error {
			_, err := bookService.List(ctx)
			return err
		},
	}), nil
}
