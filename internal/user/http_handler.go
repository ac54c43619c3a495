package user

import (
	"bookstore/internal/httpx"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type registerReq struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// Register handles POST /register
// @Summary Register a new user
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerReq true "Registration request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	newUser, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required", nil)
		case errors.Is(err, ErrAlreadyExists):
			httpx.JSONError(w, r, http.StatusBadRequest, "DUPLICATE_USER", "User already exists", nil)
		default:
			log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("register failed")
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	log.Info().Str("username", newUser.Username).Msg("user registered")
	httpx.JSONCreated(w, map[string]any{
		"message":  "User registered successfully",
		"username": newUser.Username,
	})
}
