package auth

import (
	"bookstore/internal/httpx"
	"bookstore/internal/platform/metrics"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login
// @Summary User login
// @Description Authenticate and receive a bearer token valid for one hour
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		metrics.ObserveLogin(metrics.LoginRejected)
		return
	}

	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			metrics.ObserveLogin(metrics.LoginRejected)
			log.Info().Str("username", req.Username).Str("request_id", httpx.RequestIDFrom(r)).Msg("login rejected")
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid username or password", nil)
			return
		}
		metrics.ObserveLogin(metrics.LoginFailed)
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("login failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	metrics.ObserveLogin(metrics.LoginSucceeded)
	httpx.JSONOK(w, map[string]any{
		"message":    "Login successful",
		"token":      session.Token,
		"username":   session.Username,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
