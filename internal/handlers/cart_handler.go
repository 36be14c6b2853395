package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"littlelemon/internal/service"
)

// CartHandler handles the current user's cart.
type CartHandler struct {
	cart   *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

// List handles GET /api/cart/menu-items.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	lines, err := h.cart.List(r.Context(), a)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, lines, h.logger)
}

type addToCartRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// Add handles POST /api/cart/menu-items. Re-adding an item updates its
// line instead of duplicating it.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	line, err := h.cart.Add(r.Context(), a, req.MenuItemID, req.Quantity)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, line, h.logger)
}

// Clear handles DELETE /api/cart/menu-items. An already-empty cart is 404.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	if err := h.cart.Clear(r.Context(), a); err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"}, h.logger)
}
