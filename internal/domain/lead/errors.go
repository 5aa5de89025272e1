package lead

import "errors"

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrNameRequired    = errors.New("name is required")
	ErrMessageRequired = errors.New("message is required")
)
