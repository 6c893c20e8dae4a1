package models

import "time"

// Admin is admin account entity
type Admin struct {
	Handle       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PendingRegistration is an unconfirmed admin sign-up attempt.
// It lives in shared storage keyed by handle so that the verification
// request may be served by any process instance.
type PendingRegistration struct {
	Handle    string
	Email     string
	Password  string
	OTP       string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenPayload contains authorization token payload
type TokenPayload struct {
	Handle string
}
