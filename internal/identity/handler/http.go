// Package handler exposes admin authentication over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"orgsphere/backend/internal/identity/service"
	"orgsphere/backend/internal/server/respond"
)

// Handler serves the admin authentication endpoints.
type Handler struct {
	svc      *service.AuthService
	validate *validator.Validate
}

// NewHandler returns a Handler backed by the given auth service.
func NewHandler(svc *service.AuthService) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse is the response body for POST /admin/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /admin/login. Bad credentials always yield the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusOK, LoginResponse{AccessToken: res.AccessToken, TokenType: res.TokenType})
}
