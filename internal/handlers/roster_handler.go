package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"littlelemon/internal/auth"
	"littlelemon/internal/service"
)

// RosterHandler handles the manager and delivery crew role rosters.
type RosterHandler struct {
	roster *service.RosterService
	role   auth.Role
	logger *slog.Logger
}

// NewRosterHandler creates a roster handler bound to one role; the same
// handler type serves both /groups/manager and /groups/delivery-crew.
func NewRosterHandler(roster *service.RosterService, role auth.Role, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{roster: roster, role: role, logger: logger}
}

// List handles GET /api/groups/{role}/users.
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	users, err := h.roster.List(r.Context(), a, h.role)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, users, h.logger)
}

// Get handles GET /api/groups/{role}/users/{userId}.
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	user, err := h.roster.Get(r.Context(), a, h.role, chi.URLParam(r, "userId"))
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, user, h.logger)
}

type rosterAddRequest struct {
	Username string `json:"username"`
}

// Add handles POST /api/groups/{role}/users, granting the role by
// username. Granting an already-held role succeeds.
func (h *RosterHandler) Add(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var req rosterAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	user, err := h.roster.Add(r.Context(), a, h.role, req.Username)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, user, h.logger)
}

// Remove handles DELETE /api/groups/{role}/users/{userId}. Removing a
// user who does not hold the role is 404.
func (h *RosterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	if err := h.roster.Remove(r.Context(), a, h.role, chi.URLParam(r, "userId")); err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "role removed"}, h.logger)
}
