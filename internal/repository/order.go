package repository

import (
	"context"
	"errors"
	"time"

	"github.com/innocentteam/restaurant/internal/models"
	"github.com/innocentteam/restaurant/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (id, customer_name, customer_email, product_id, product_name, quantity, status)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING id, customer_name, customer_email, product_id, product_name, quantity, status,
						          dispatched_at, dispatched_by, confirmed_at, created_at
`
	selectOrderByIDQuery = `
						SELECT id, customer_name, customer_email, product_id, product_name, quantity, status,
						       dispatched_at, dispatched_by, confirmed_at, created_at FROM orders
						WHERE id = $1
`
	acceptOrderQuery = `
						UPDATE orders
						SET status = 'accepted', dispatched_at = $2, dispatched_by = $3
						WHERE id = $1 AND status = 'placed'
						RETURNING id, customer_name, customer_email, product_id, product_name, quantity, status,
						          dispatched_at, dispatched_by, confirmed_at, created_at
`
	cancelOrderQuery = `
						UPDATE orders
						SET status = 'cancelled'
						WHERE id = $1 AND status = 'placed'
						RETURNING id, customer_name, customer_email, product_id, product_name, quantity, status,
						          dispatched_at, dispatched_by, confirmed_at, created_at
`
	confirmOrderQuery = `
						UPDATE orders
						SET confirmed_at = COALESCE(confirmed_at, $2)
						WHERE id = $1 AND status <> 'cancelled'
						RETURNING id, customer_name, customer_email, product_id, product_name, quantity, status,
						          dispatched_at, dispatched_by, confirmed_at, created_at
`
	deleteOrderQuery = `
						DELETE FROM orders
						WHERE id = $1
`
)

// OrderRepository implements service.OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := models.Order{}
	err := row.Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.ProductID, &order.ProductName,
		&order.Quantity, &order.Status, &order.DispatchedAt, &order.DispatchedBy, &order.ConfirmedAt, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	row := or.db.QueryRow(ctx, insertOrderQuery,
		order.ID, order.CustomerName, order.CustomerEmail, order.ProductID, order.ProductName,
		order.Quantity, order.Status)
	created, err := scanOrder(row)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}
	return created, nil
}

// GetOrderByID returns order by id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, id))
}

// AcceptOrder transitions a placed order to accepted recording dispatch metadata.
// The status guard is part of the statement so a concurrent accept loses atomically.
func (or *OrderRepository) AcceptOrder(ctx context.Context, id, admin string, dispatchedAt time.Time) (*models.Order, error) {
	return scanOrder(or.db.QueryRow(ctx, acceptOrderQuery, id, dispatchedAt, admin))
}

// CancelOrder transitions a placed order to cancelled
func (or *OrderRepository) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	return scanOrder(or.db.QueryRow(ctx, cancelOrderQuery, id))
}

// ConfirmOrder sets customer confirmation time once
func (or *OrderRepository) ConfirmOrder(ctx context.Context, id string, confirmedAt time.Time) (*models.Order, error) {
	return scanOrder(or.db.QueryRow(ctx, confirmOrderQuery, id, confirmedAt))
}

// DeleteOrder removes order by id
func (or *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	cmd, err := or.db.Exec(ctx, deleteOrderQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
