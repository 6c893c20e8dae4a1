package models

import "time"

// order status
const (
	OrderStatusPlaced    = "placed"
	OrderStatusAccepted  = "accepted"
	OrderStatusCancelled = "cancelled"
)

// Order is customer order entity
type Order struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	ProductID     string
	ProductName   string
	Quantity      int
	Status        string
	DispatchedAt  *time.Time
	DispatchedBy  string
	ConfirmedAt   *time.Time
	CreatedAt     time.Time
}

// IsTerminal reports whether no further lifecycle transition is permitted.
func (o *Order) IsTerminal() bool {
	return o.Status != OrderStatusPlaced
}

// PendingOrder is an order attempt awaiting OTP confirmation, keyed by the
// customer email the code was sent to.
type PendingOrder struct {
	CustomerEmail string
	CustomerName  string
	ProductID     string
	Quantity      int
	OTP           string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}
