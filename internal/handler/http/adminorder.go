package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/innocentteam/restaurant/internal/middleware"
	"github.com/innocentteam/restaurant/internal/service"
)

// AdminOrderService is the part of the order workflow used by admin endpoints
type AdminOrderService interface {
	// Accept transitions a placed order to accepted
	Accept(ctx context.Context, orderID, admin string) (*service.AcceptResult, error)
	// Reject removes the order record entirely
	Reject(ctx context.Context, orderID string) error
}

// AdminOrderHandler represents HTTP handler for admin order requests
type AdminOrderHandler struct {
	svc AdminOrderService
}

// NewAdminOrderHandler creates new AdminOrderHandler instance
func NewAdminOrderHandler(svc AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{svc: svc}
}

type acceptOrderRequest struct {
	OrderID string `json:"order_id"`
}

type acceptOrderResponse struct {
	orderResponse
	Warning string `json:"warning,omitempty"`
}

// AcceptOrder accepts a placed order on behalf of the signed-in admin
// 200 — order dispatched;
// 400 — bad request body or malformed order id;
// 404 — order not found or already terminal;
// 500 — internal error.
func (ah *AdminOrderHandler) AcceptOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := middleware.PayloadFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		var req acceptOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		result, err := ah.svc.Accept(r.Context(), req.OrderID, payload.Handle)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := acceptOrderResponse{orderResponse: newOrderResponse(result.Order)}
		if result.NotifyFailed {
			resp.Warning = "customer notification could not be sent"
		}

		writeJSON(w, http.StatusOK, "Order has been dispatched!", resp)
	}
}

// RejectOrder removes an order entirely
// 200 — order rejected;
// 400 — malformed order id;
// 404 — order not found;
// 500 — internal error.
func (ah *AdminOrderHandler) RejectOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ah.svc.Reject(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Order rejected successfully.", nil)
	}
}
