// Package handlers exposes the ordering backend over HTTP: request
// decoding, the error-to-status mapping, and one handler type per
// resource. All business rules live in the service layer.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"littlelemon/internal/auth"
	"littlelemon/internal/middleware"
	"littlelemon/internal/service"
	"littlelemon/internal/storage"
)

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format.
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// RespondError maps a service error to its HTTP status:
// 401 for unauthorized, 403 for forbidden, 404 for missing rows or empty
// bulk-update targets, 409 for protected deletes, 400 for validation
// failures, 500 otherwise.
func RespondError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, err.Error(), logger)
	case errors.Is(err, auth.ErrForbidden):
		WriteError(w, http.StatusForbidden, err.Error(), logger)
	case errors.Is(err, storage.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found", logger)
	case errors.Is(err, service.ErrCategoryInUse):
		WriteError(w, http.StatusConflict, err.Error(), logger)
	case errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrDuplicateTitle),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrUsernameExists):
		WriteError(w, http.StatusBadRequest, err.Error(), logger)
	default:
		logger.Error("internal error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}

// actor pulls the authenticated actor from the request context. The auth
// middleware guarantees it is present on protected routes.
func actor(r *http.Request, w http.ResponseWriter, logger *slog.Logger) (auth.Actor, bool) {
	a, ok := middleware.ActorFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error(), logger)
		return auth.Actor{}, false
	}
	return a, true
}

// pagination parses page/perpage query params into limit and offset,
// defaulting to page 1 with 10 results per page.
func pagination(r *http.Request) (limit, offset int) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perpage", 10)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return perPage, (page - 1) * perPage
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ordering parses an "ordering" query param of the form "field" or
// "-field" against the allowed field names.
func ordering(r *http.Request, allowed ...string) (field string, desc bool) {
	v := r.URL.Query().Get("ordering")
	if v == "" {
		return "", false
	}
	if v[0] == '-' {
		desc = true
		v = v[1:]
	}
	for _, f := range allowed {
		if v == f {
			return v, desc
		}
	}
	return "", false
}
