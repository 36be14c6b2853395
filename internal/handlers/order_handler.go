package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"littlelemon/internal/service"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// List handles GET /api/orders. The result set depends on the actor's
// role: managers see all orders, crew see their assignments, users see
// their own.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	params := service.ListParams{}
	params.OrderBy, params.Desc = ordering(r, "date", "total")
	params.Limit, params.Offset = pagination(r)

	orders, err := h.orders.List(r.Context(), a, params)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.logger)
}

// Create handles POST /api/orders: places an order from the actor's cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	order, err := h.orders.Create(r.Context(), a)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, order, h.logger)
}

// Get handles GET /api/orders/{orderId}. Owner-only.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	order, err := h.orders.Get(r.Context(), a, chi.URLParam(r, "orderId"))
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.logger)
}

type orderUpdateRequest struct {
	DeliveryCrewID *string `json:"delivery_crew_id"`
	Status         *bool   `json:"status"`
}

// Update handles PUT /api/orders/{orderId}: a manager replaces the
// order's delivery crew and status.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var req orderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	crewID := ""
	if req.DeliveryCrewID != nil {
		crewID = *req.DeliveryCrewID
	}
	status := false
	if req.Status != nil {
		status = *req.Status
	}
	order, err := h.orders.Update(r.Context(), a, chi.URLParam(r, "orderId"), crewID, status)
	if err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.logger)
}

// PartialUpdate handles PATCH /api/orders/{id}. The id in the path is the
// order owner's user id, not an order id, and the update applies to every
// order that user owns: a delivery_crew_id field routes to the manager
// bulk assignment, a status field to the crew bulk status update.
func (h *OrderHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	var req orderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	ownerID := chi.URLParam(r, "orderId")

	switch {
	case req.DeliveryCrewID != nil:
		if err := h.orders.AssignCrew(r.Context(), a, ownerID, *req.DeliveryCrewID); err != nil {
			RespondError(w, err, h.logger)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": "delivery crew assigned"}, h.logger)
	case req.Status != nil:
		if err := h.orders.UpdateStatus(r.Context(), a, ownerID, *req.Status); err != nil {
			RespondError(w, err, h.logger)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": "order status updated"}, h.logger)
	default:
		WriteError(w, http.StatusBadRequest, "delivery_crew_id or status required", h.logger)
	}
}

// Delete handles DELETE /api/orders/{orderId}. Manager only.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w, h.logger)
	if !ok {
		return
	}
	if err := h.orders.Delete(r.Context(), a, chi.URLParam(r, "orderId")); err != nil {
		RespondError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "order deleted"}, h.logger)
}
