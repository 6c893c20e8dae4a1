package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/innocentteam/restaurant/internal/clock"
	"github.com/innocentteam/restaurant/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// AcceptOrder transitions a placed order to accepted
	AcceptOrder(ctx context.Context, id, admin string, dispatchedAt time.Time) (*models.Order, error)
	// CancelOrder transitions a placed order to cancelled
	CancelOrder(ctx context.Context, id string) (*models.Order, error)
	// ConfirmOrder records customer confirmation time once
	ConfirmOrder(ctx context.Context, id string, confirmedAt time.Time) (*models.Order, error)
	// DeleteOrder removes order by id
	DeleteOrder(ctx context.Context, id string) error
}

// PendingOrderRepository is interface for interacting with unverified order attempts
type PendingOrderRepository interface {
	// UpsertPendingOrder writes pending order replacing existing one for the same email
	UpsertPendingOrder(ctx context.Context, pending *models.PendingOrder) error
	// GetPendingOrder returns pending order by customer email
	GetPendingOrder(ctx context.Context, email string) (*models.PendingOrder, error)
	// DeletePendingOrder removes pending order by customer email
	DeletePendingOrder(ctx context.Context, email string) error
}

// ProductGetter returns a catalog product by id
type ProductGetter interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

// OrderService implements customer and admin order lifecycle
type OrderService struct {
	orders   OrderRepository
	pending  PendingOrderRepository
	products ProductGetter
	mailer   Mailer
	clock    clock.Clock
	logger   *zap.Logger
	otpTTL   time.Duration
}

// NewOrderService creates new OrderService instance
func NewOrderService(orders OrderRepository, pending PendingOrderRepository, products ProductGetter, mailer Mailer, clk clock.Clock, logger *zap.Logger, opts ...OrderOption) *OrderService {
	svc := &OrderService{
		orders:   orders,
		pending:  pending,
		products: products,
		mailer:   mailer,
		clock:    clk,
		logger:   logger,
		otpTTL:   defaultOTPTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderOption func(*OrderService)

// WithOrderOTPTTL overrides the default lifetime of a pending order.
func WithOrderOTPTTL(d time.Duration) OrderOption {
	return func(s *OrderService) {
		if d > 0 {
			s.otpTTL = d
		}
	}
}

// PlaceOrderInput carries a customer order attempt
type PlaceOrderInput struct {
	ProductID     string
	CustomerName  string
	CustomerEmail string
	Quantity      int
}

// Place stores a pending order for the customer email and sends a one-time
// code to it. The order record itself is created on verification.
func (os *OrderService) Place(ctx context.Context, in PlaceOrderInput) error {
	if _, err := uuid.Parse(in.ProductID); err != nil {
		return models.ErrInvalidID
	}
	if in.Quantity <= 0 {
		return models.ErrInvalidQuantity
	}

	product, err := os.products.GetProductByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return models.ErrProductNotFound
		}
		return err
	}
	if !product.Available {
		return models.ErrProductUnavailable
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	now := os.clock.Now()
	pending := models.PendingOrder{
		CustomerEmail: in.CustomerEmail,
		CustomerName:  in.CustomerName,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		OTP:           otp,
		CreatedAt:     now,
		ExpiresAt:     now.Add(os.otpTTL),
	}

	if err := os.pending.UpsertPendingOrder(ctx, &pending); err != nil {
		return err
	}

	body := fmt.Sprintf("Use OTP %s to confirm your order of %s. Thanks from Innocent Team.", otp, product.Name)
	if err := os.mailer.Send(ctx, in.CustomerEmail, "Order confirmation OTP", body); err != nil {
		if delErr := os.pending.DeletePendingOrder(ctx, in.CustomerEmail); delErr != nil {
			os.logger.Error("rollback pending order", zap.String("email", in.CustomerEmail), zap.Error(delErr))
		}
		os.logger.Error("send order otp", zap.String("email", in.CustomerEmail), zap.Error(err))
		return models.ErrNotificationFailed
	}

	return nil
}

// VerifyPlacement consumes a pending order with a matching one-time code and
// creates the order with status placed.
func (os *OrderService) VerifyPlacement(ctx context.Context, email, otp string) (*models.Order, error) {
	pending, err := os.pending.GetPendingOrder(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrPendingNotFound
		}
		return nil, err
	}

	now := os.clock.Now()
	if !pending.ExpiresAt.After(now) {
		if err := os.pending.DeletePendingOrder(ctx, email); err != nil {
			os.logger.Error("reclaim expired pending order", zap.String("email", email), zap.Error(err))
		}
		return nil, models.ErrPendingNotFound
	}

	if otp != pending.OTP {
		return nil, models.ErrInvalidOTP
	}

	product, err := os.products.GetProductByID(ctx, pending.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, err
	}

	order, err := os.orders.CreateOrder(ctx, &models.Order{
		ID:            uuid.NewString(),
		CustomerName:  pending.CustomerName,
		CustomerEmail: pending.CustomerEmail,
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      pending.Quantity,
		Status:        models.OrderStatusPlaced,
	})
	if err != nil {
		return nil, err
	}

	if err := os.pending.DeletePendingOrder(ctx, email); err != nil {
		os.logger.Error("delete consumed pending order", zap.String("email", email), zap.Error(err))
	}

	body := fmt.Sprintf("Thanks %s, your order of %d %s has been placed. From Innocent Team.",
		order.CustomerName, order.Quantity, order.ProductName)
	if err := os.mailer.Send(ctx, order.CustomerEmail, "Order placed", body); err != nil {
		os.logger.Error("send placement receipt", zap.String("email", order.CustomerEmail), zap.Error(err))
	}

	return order, nil
}

// Confirm records a customer acknowledgment of the order
func (os *OrderService) Confirm(ctx context.Context, orderID string) (*models.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, models.ErrInvalidID
	}

	order, err := os.orders.ConfirmOrder(ctx, orderID, os.clock.Now())
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}

// Cancel cancels a placed order. Terminal orders cannot be cancelled.
func (os *OrderService) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, models.ErrInvalidID
	}

	order, err := os.orders.CancelOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}

// AcceptResult is the outcome of a successful order acceptance
type AcceptResult struct {
	Order *models.Order
	// NotifyFailed is set when the customer notification could not be sent;
	// the status change is not undone in that case.
	NotifyFailed bool
}

// Accept transitions a placed order to accepted recording the dispatch time
// and the handling admin, then notifies the customer.
func (os *OrderService) Accept(ctx context.Context, orderID, admin string) (*AcceptResult, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, models.ErrInvalidID
	}

	order, err := os.orders.AcceptOrder(ctx, orderID, admin, os.clock.Now())
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	result := AcceptResult{Order: order}

	body := fmt.Sprintf("Thanks, %s for choosing us and ordering %d %s. Please order again. From Innocent Team.",
		order.CustomerName, order.Quantity, order.ProductName)
	if err := os.mailer.Send(ctx, order.CustomerEmail, "Order Accepted", body); err != nil {
		os.logger.Error("send acceptance notification", zap.String("email", order.CustomerEmail), zap.Error(err))
		result.NotifyFailed = true
	}

	return &result, nil
}

// Reject removes the order record entirely. History is discarded on purpose.
func (os *OrderService) Reject(ctx context.Context, orderID string) error {
	if _, err := uuid.Parse(orderID); err != nil {
		return models.ErrInvalidID
	}

	if err := os.orders.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return models.ErrOrderNotFound
		}
		return err
	}

	return nil
}
