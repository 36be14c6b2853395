package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"littlelemon/internal/auth"
	"littlelemon/internal/models"
	"littlelemon/internal/service"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token}, h.logger)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			WriteError(w, http.StatusUnauthorized, err.Error(), h.logger)
			return
		}
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, sessionResponse{User: user, Token: token}, h.logger)
}

// Me handles GET /api/auth/me, returning the authenticated actor.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":        a.ID,
		"username":  a.Username,
		"superuser": a.Superuser,
		"roles":     a.RoleNames(),
	}, h.logger)
}
