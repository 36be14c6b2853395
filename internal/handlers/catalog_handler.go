package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"littlelemon/internal/service"
	"littlelemon/internal/storage"
)

// CatalogHandler handles category and menu item HTTP requests.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	categories, err := h.catalog.ListCategories(r.Context(), a)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, categories, h.logger)
}

type categoryRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// CreateCategory handles POST /api/categories.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	category, err := h.catalog.CreateCategory(r.Context(), a, req.Slug, req.Title)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, category, h.logger)
}

// DeleteCategory handles DELETE /api/categories/{categoryId}.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(r.Context(), a, chi.URLParam(r, "categoryId")); err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "category deleted"}, h.logger)
}

// ListMenuItems handles GET /api/menu-items with filter, search, ordering
// and pagination query params.
func (h *CatalogHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}

	filter := storage.MenuItemFilter{
		CategorySlug: r.URL.Query().Get("category"),
		Search:       r.URL.Query().Get("search"),
	}
	if v := r.URL.Query().Get("featured"); v == "true" || v == "false" {
		featured := v == "true"
		filter.Featured = &featured
	}
	filter.OrderBy, filter.Desc = ordering(r, "price", "title")
	filter.Limit, filter.Offset = pagination(r)

	items, err := h.catalog.ListMenuItems(r.Context(), a, filter)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetMenuItem handles GET /api/menu-items/{menuItemId}.
func (h *CatalogHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	item, err := h.catalog.GetMenuItem(r.Context(), a, chi.URLParam(r, "menuItemId"))
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, item, h.logger)
}

// CreateMenuItem handles POST /api/menu-items.
func (h *CatalogHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var input service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	item, err := h.catalog.CreateMenuItem(r.Context(), a, input)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, item, h.logger)
}

// UpdateMenuItem handles PUT and PATCH /api/menu-items/{menuItemId}.
// Both apply the provided fields; absent fields are left unchanged.
func (h *CatalogHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var update service.MenuItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	item, err := h.catalog.UpdateMenuItem(r.Context(), a, chi.URLParam(r, "menuItemId"), update)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, item, h.logger)
}

// DeleteMenuItem handles DELETE /api/menu-items/{menuItemId}.
func (h *CatalogHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	if err := h.catalog.DeleteMenuItem(r.Context(), a, chi.URLParam(r, "menuItemId")); err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"}, h.logger)
}
