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
	upsertPendingQuery = `
						INSERT INTO pending_registrations (handle, email, password, otp, created_at, expires_at)
						VALUES ($1, $2, $3, $4, $5, $6)
						ON CONFLICT (handle) DO UPDATE
						SET email = EXCLUDED.email, password = EXCLUDED.password, otp = EXCLUDED.otp,
						    created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
`
	selectPendingQuery = `
						SELECT handle, email, password, otp, created_at, expires_at FROM pending_registrations
						WHERE handle = $1
`
	deletePendingQuery = `
						DELETE FROM pending_registrations
						WHERE handle = $1
`
	purgePendingQuery = `
						DELETE FROM pending_registrations
						WHERE expires_at <= $1
`
)

// PendingRepository implements service.PendingRepository interface.
// A single live row per handle; upsert replaces any unconsumed code
// so that concurrent sign-ups for the same handle are last-writer-wins.
type PendingRepository struct {
	db *postgres.DB
}

// NewPendingRepository creates new PendingRepository instance
func NewPendingRepository(db *postgres.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

// UpsertPending writes pending registration replacing existing one
func (pr *PendingRepository) UpsertPending(ctx context.Context, pending *models.PendingRegistration) error {
	_, err := pr.db.Exec(ctx, upsertPendingQuery,
		pending.Handle, pending.Email, pending.Password, pending.OTP, pending.CreatedAt, pending.ExpiresAt)
	return err
}

// GetPending returns pending registration by handle
func (pr *PendingRepository) GetPending(ctx context.Context, handle string) (*models.PendingRegistration, error) {
	pending := models.PendingRegistration{}
	err := pr.db.QueryRow(ctx, selectPendingQuery, handle).
		Scan(&pending.Handle, &pending.Email, &pending.Password, &pending.OTP, &pending.CreatedAt, &pending.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &pending, nil
}

// DeletePending removes pending registration by handle
func (pr *PendingRepository) DeletePending(ctx context.Context, handle string) error {
	_, err := pr.db.Exec(ctx, deletePendingQuery, handle)
	return err
}

// PurgeExpired removes pending registrations expired at given time
func (pr *PendingRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := pr.db.Exec(ctx, purgePendingQuery, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
