package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/innocentteam/restaurant/internal/models"
	"github.com/innocentteam/restaurant/internal/service"
)

// OrderService is the part of the order workflow used by customer endpoints
type OrderService interface {
	// Place stores a pending order and sends a one-time code
	Place(ctx context.Context, in service.PlaceOrderInput) error
	// VerifyPlacement consumes the pending order and creates the order
	VerifyPlacement(ctx context.Context, email, otp string) (*models.Order, error)
	// Confirm records a customer acknowledgment of the order
	Confirm(ctx context.Context, orderID string) (*models.Order, error)
	// Cancel cancels a placed order
	Cancel(ctx context.Context, orderID string) (*models.Order, error)
}

// OrderHandler represents HTTP handler for customer order requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderResponse struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	DispatchedAt  *time.Time `json:"dispatched_at,omitempty"`
	DispatchedBy  string     `json:"dispatched_by,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newOrderResponse(order *models.Order) orderResponse {
	return orderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		ProductID:     order.ProductID,
		ProductName:   order.ProductName,
		Quantity:      order.Quantity,
		Status:        order.Status,
		DispatchedAt:  order.DispatchedAt,
		DispatchedBy:  order.DispatchedBy,
		ConfirmedAt:   order.ConfirmedAt,
		CreatedAt:     order.CreatedAt,
	}
}

type placeOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Quantity      int    `json:"quantity"`
}

// PlaceOrder begins a customer order against a catalog product
// 201 — a one-time code has been sent;
// 400 — bad request body or malformed product id;
// 404 — product not found;
// 409 — product not available;
// 500 — the code could not be delivered.
func (oh *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		var req placeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.CustomerName == "" || req.CustomerEmail == "" {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		err := oh.svc.Place(r.Context(), service.PlaceOrderInput{
			ProductID:     productID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			Quantity:      req.Quantity,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated,
			"Please enter the OTP to complete the order",
			fmt.Sprintf("OTP is sent to %s", req.CustomerEmail))
	}
}

type otpVerifyRequest struct {
	CustomerEmail string `json:"customer_email"`
	OTP           string `json:"otp"`
}

// OTPVerify confirms a pending order with a one-time code
// 201 — order placed;
// 400 — bad request body;
// 404 — no live pending order for this email;
// 409 — wrong code;
// 500 — internal error.
func (oh *OrderHandler) OTPVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req otpVerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.CustomerEmail == "" || req.OTP == "" {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		order, err := oh.svc.VerifyPlacement(r.Context(), req.CustomerEmail, req.OTP)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, "Order placed successfully.", newOrderResponse(order))
	}
}

// CancelOrder cancels a placed order
// 200 — order cancelled;
// 400 — malformed order id;
// 404 — order not found or already terminal;
// 500 — internal error.
func (oh *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := oh.svc.Cancel(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Order cancelled successfully.", newOrderResponse(order))
	}
}

// OrderConfirmation records a customer acknowledgment of the order
// 200 — confirmation recorded;
// 400 — malformed order id;
// 404 — order not found;
// 500 — internal error.
func (oh *OrderHandler) OrderConfirmation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := oh.svc.Confirm(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Order confirmed.", newOrderResponse(order))
	}
}
