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
	upsertPendingOrderQuery = `
						INSERT INTO pending_orders (customer_email, customer_name, product_id, quantity, otp, created_at, expires_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						ON CONFLICT (customer_email) DO UPDATE
						SET customer_name = EXCLUDED.customer_name, product_id = EXCLUDED.product_id,
						    quantity = EXCLUDED.quantity, otp = EXCLUDED.otp,
						    created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
`
	selectPendingOrderQuery = `
						SELECT customer_email, customer_name, product_id, quantity, otp, created_at, expires_at FROM pending_orders
						WHERE customer_email = $1
`
	deletePendingOrderQuery = `
						DELETE FROM pending_orders
						WHERE customer_email = $1
`
	purgePendingOrdersQuery = `
						DELETE FROM pending_orders
						WHERE expires_at <= $1
`
)

// PendingOrderRepository implements service.PendingOrderRepository interface
type PendingOrderRepository struct {
	db *postgres.DB
}

// NewPendingOrderRepository creates new PendingOrderRepository instance
func NewPendingOrderRepository(db *postgres.DB) *PendingOrderRepository {
	return &PendingOrderRepository{db: db}
}

// UpsertPendingOrder writes pending order replacing existing one for the same email
func (pr *PendingOrderRepository) UpsertPendingOrder(ctx context.Context, pending *models.PendingOrder) error {
	_, err := pr.db.Exec(ctx, upsertPendingOrderQuery,
		pending.CustomerEmail, pending.CustomerName, pending.ProductID, pending.Quantity,
		pending.OTP, pending.CreatedAt, pending.ExpiresAt)
	return err
}

// GetPendingOrder returns pending order by customer email
func (pr *PendingOrderRepository) GetPendingOrder(ctx context.Context, email string) (*models.PendingOrder, error) {
	pending := models.PendingOrder{}
	err := pr.db.QueryRow(ctx, selectPendingOrderQuery, email).
		Scan(&pending.CustomerEmail, &pending.CustomerName, &pending.ProductID, &pending.Quantity,
			&pending.OTP, &pending.CreatedAt, &pending.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &pending, nil
}

// DeletePendingOrder removes pending order by customer email
func (pr *PendingOrderRepository) DeletePendingOrder(ctx context.Context, email string) error {
	_, err := pr.db.Exec(ctx, deletePendingOrderQuery, email)
	return err
}

// PurgeExpired removes pending orders expired at given time
func (pr *PendingOrderRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := pr.db.Exec(ctx, purgePendingOrdersQuery, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
