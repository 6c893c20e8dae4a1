package models

import "errors"

var (
	ErrConflictData = errors.New("data conflicts with existing data")
	ErrDataNotFound = errors.New("data not found")

	ErrAccountExists   = errors.New("account already exist")
	ErrAccountNotFound = errors.New("account does not exist")
	ErrInvalidPassword = errors.New("incorrect password")

	ErrPendingNotFound = errors.New("no pending sign-up for this handle")
	ErrInvalidOTP      = errors.New("wrong otp")

	ErrInvalidID          = errors.New("invalid id")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInvalidQuantity    = errors.New("invalid quantity")

	ErrNotificationFailed = errors.New("notification cannot be sent")
)
