package repository

import (
	"context"
	"errors"

	"github.com/innocentteam/restaurant/internal/models"
	"github.com/innocentteam/restaurant/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

// unique_violation
const pgErrUniqueViolationCode = "23505"

const (
	insertAdminQuery = `
						INSERT INTO admins (handle, email, password_hash)
						VALUES ($1, $2, $3)
						RETURNING handle, email, password_hash, created_at
`
	selectAdminByHandleQuery = `
						SELECT handle, email, password_hash, created_at FROM admins
						WHERE handle = $1
`
	existsAdminByHandleQuery = `
						SELECT EXISTS (SELECT 1 FROM admins WHERE handle = $1)
`
)

// AdminRepository implements service.AdminRepository interface
type AdminRepository struct {
	db *postgres.DB
}

// NewAdminRepository creates new AdminRepository instance
func NewAdminRepository(db *postgres.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// ExistsByHandle reports whether an admin account with given handle exists
func (ar *AdminRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var exists bool
	if err := ar.db.QueryRow(ctx, existsAdminByHandleQuery, handle).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateAdmin inserts new admin account to database
func (ar *AdminRepository) CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	err := ar.db.QueryRow(ctx, insertAdminQuery, admin.Handle, admin.Email, admin.PasswordHash).
		Scan(&admin.Handle, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errCode := ar.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return admin, nil
}

// GetAdminByHandle returns admin account by handle including password hash
func (ar *AdminRepository) GetAdminByHandle(ctx context.Context, handle string) (*models.Admin, error) {
	admin := models.Admin{}
	err := ar.db.QueryRow(ctx, selectAdminByHandleQuery, handle).
		Scan(&admin.Handle, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &admin, nil
}
