package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/codecourse-api/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			config.Error(w, http.StatusBadRequest, verr.Msg)
		case errors.Is(err, ErrEmailInUse):
			config.Error(w, http.StatusBadRequest, "Email already in use")
		default:
			log.WithError(err).Error("Failed to register user")
			config.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			config.Error(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, ErrInvalidCredentials):
			config.Error(w, http.StatusUnauthorized, "Invalid email/password")
		default:
			log.WithError(err).Error("Failed to log in")
			config.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
