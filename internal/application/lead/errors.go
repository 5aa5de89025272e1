package lead

import "errors"

var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrSaveSubmission    = errors.New("failed to save submission")
)
