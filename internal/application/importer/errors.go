package importer

import (
	"errors"
	"fmt"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrUnreadableFile  = errors.New("failed to parse file")
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooManyRows     = errors.New("too many rows")
	ErrNoValidHeaders  = errors.New("no valid headers")
	ErrMissingClientID = errors.New("missing client id")
	ErrNoRows          = errors.New("no valid rows to upload")
	ErrInvalidRows     = errors.New("rows failed validation")
)

// InvalidRowsError carries the field errors that rejected a commit. Nothing is
// inserted when it is returned.
type InvalidRowsError struct {
	Errors []contact.ValidationError
}

func (e *InvalidRowsError) Error() string {
	if len(e.Errors) == 0 {
		return ErrInvalidRows.Error()
	}
	first := e.Errors[0]
	return fmt.Sprintf("%s: row %d: %s: %s", ErrInvalidRows, first.Row, first.Field, first.Message)
}

func (e *InvalidRowsError) Unwrap() error {
	return ErrInvalidRows
}
