package service

import "errors"

// Expected authentication outcomes. Handlers map these to 4xx responses;
// anything else is an infrastructure failure and becomes a generic 500.
var (
	ErrUnknownEmail    = errors.New("no user registered with this email")
	ErrInactiveAccount = errors.New("account is not active")
	ErrBadCredential   = errors.New("password does not match")
	ErrBlockedAccount  = errors.New("account is blocked, contact an administrator")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrPeriodNotFound  = errors.New("period not found")
	ErrInvalidInput    = errors.New("invalid input")

	// ErrStoreUnavailable is surfaced when the duplicate-insert recovery
	// path on federated sign-in still cannot resolve the user.
	ErrStoreUnavailable = errors.New("store unavailable")
)
