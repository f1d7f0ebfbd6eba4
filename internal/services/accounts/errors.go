package accounts

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("an account with that email already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
