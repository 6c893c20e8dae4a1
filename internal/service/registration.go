package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/innocentteam/restaurant/internal/clock"
	"github.com/innocentteam/restaurant/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminRepository is interface for interacting with admin account data
type AdminRepository interface {
	// ExistsByHandle reports whether an account with given handle exists
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	// CreateAdmin inserts new admin account
	CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	// GetAdminByHandle returns admin account including password hash
	GetAdminByHandle(ctx context.Context, handle string) (*models.Admin, error)
}

// PendingRepository is interface for interacting with pending registrations
type PendingRepository interface {
	// UpsertPending writes pending registration replacing existing one
	UpsertPending(ctx context.Context, pending *models.PendingRegistration) error
	// GetPending returns pending registration by handle
	GetPending(ctx context.Context, handle string) (*models.PendingRegistration, error)
	// DeletePending removes pending registration by handle
	DeletePending(ctx context.Context, handle string) error
}

// Mailer sends a plain-text message to a single address
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

const defaultOTPTTL = 10 * time.Minute

// RegistrationService implements the OTP-gated admin sign-up workflow.
// All in-flight sign-up state lives in the shared pending registration
// table, never on the service itself.
type RegistrationService struct {
	admins  AdminRepository
	pending PendingRepository
	mailer  Mailer
	clock   clock.Clock
	logger  *zap.Logger
	otpTTL  time.Duration
}

// NewRegistrationService creates new RegistrationService instance
func NewRegistrationService(admins AdminRepository, pending PendingRepository, mailer Mailer, clk clock.Clock, logger *zap.Logger, opts ...RegistrationOption) *RegistrationService {
	svc := &RegistrationService{
		admins:  admins,
		pending: pending,
		mailer:  mailer,
		clock:   clk,
		logger:  logger,
		otpTTL:  defaultOTPTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RegistrationOption func(*RegistrationService)

// WithOTPTTL overrides the default lifetime of a pending registration.
func WithOTPTTL(d time.Duration) RegistrationOption {
	return func(s *RegistrationService) {
		if d > 0 {
			s.otpTTL = d
		}
	}
}

// SignUp begins admin sign-up: stores a pending registration for handle and
// sends a one-time code to email. A repeated sign-up for the same handle
// replaces the previous unconsumed code.
func (rs *RegistrationService) SignUp(ctx context.Context, handle, email, password string) error {
	exists, err := rs.admins.ExistsByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrAccountExists
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	now := rs.clock.Now()
	pending := models.PendingRegistration{
		Handle:    handle,
		Email:     email,
		Password:  password,
		OTP:       otp,
		CreatedAt: now,
		ExpiresAt: now.Add(rs.otpTTL),
	}

	if err := rs.pending.UpsertPending(ctx, &pending); err != nil {
		return err
	}

	body := fmt.Sprintf("Use this OTP for the signup process %s. Thanks from Innocent Team.", otp)
	if err := rs.mailer.Send(ctx, email, "OTP confirmation", body); err != nil {
		// no live pending row may be left behind when the code never reached the address
		if delErr := rs.pending.DeletePending(ctx, handle); delErr != nil {
			rs.logger.Error("rollback pending registration", zap.String("handle", handle), zap.Error(delErr))
		}
		rs.logger.Error("send sign-up otp", zap.String("email", email), zap.Error(err))
		return models.ErrNotificationFailed
	}

	return nil
}

// VerifyResult is the outcome of a successful sign-up confirmation
type VerifyResult struct {
	Admin      *models.Admin
	VerifiedAt time.Time
	// NotifyFailed is set when the welcome message could not be sent;
	// account creation is not rolled back in that case.
	NotifyFailed bool
}

// Verify confirms a pending sign-up with a one-time code and activates the account.
// Expired pending registrations are treated as absent and reclaimed.
func (rs *RegistrationService) Verify(ctx context.Context, handle, otp string) (*VerifyResult, error) {
	pending, err := rs.pending.GetPending(ctx, handle)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrPendingNotFound
		}
		return nil, err
	}

	now := rs.clock.Now()
	if !pending.ExpiresAt.After(now) {
		if err := rs.pending.DeletePending(ctx, handle); err != nil {
			rs.logger.Error("reclaim expired pending registration", zap.String("handle", handle), zap.Error(err))
		}
		return nil, models.ErrPendingNotFound
	}

	if otp != pending.OTP {
		return nil, models.ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin, err := rs.admins.CreateAdmin(ctx, &models.Admin{
		Handle:       pending.Handle,
		Email:        pending.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, models.ErrConflictData) {
			return nil, models.ErrAccountExists
		}
		return nil, err
	}

	// create-then-delete: a crash in between leaves a retryable pending row,
	// never an account-less void
	if err := rs.pending.DeletePending(ctx, handle); err != nil {
		rs.logger.Error("delete consumed pending registration", zap.String("handle", handle), zap.Error(err))
	}

	result := VerifyResult{
		Admin:      admin,
		VerifiedAt: now,
	}

	body := fmt.Sprintf("Thanks %s for choosing Innocent Restaurant. From Innocent Team.", admin.Handle)
	if err := rs.mailer.Send(ctx, admin.Email, "Successfull sign up!", body); err != nil {
		rs.logger.Error("send welcome message", zap.String("email", admin.Email), zap.Error(err))
		result.NotifyFailed = true
	}

	return &result, nil
}

// SignIn authenticates an admin by handle and password
func (rs *RegistrationService) SignIn(ctx context.Context, handle, password string) (*models.Admin, time.Time, error) {
	admin, err := rs.admins.GetAdminByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, time.Time{}, models.ErrAccountNotFound
		}
		return nil, time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, time.Time{}, models.ErrInvalidPassword
	}

	return admin, rs.clock.Now(), nil
}
