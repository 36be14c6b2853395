package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}, h.logger)
}
