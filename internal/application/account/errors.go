package account

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired session token")
	ErrMissingSecret      = errors.New("session signing secret is not configured")
	ErrLogin              = errors.New("failed to log in")
)
