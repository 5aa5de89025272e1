package contact

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrRowLimitExceeded = errors.New("row limit exceeded")
	ErrMalformedSheet   = errors.New("malformed spreadsheet")
)
