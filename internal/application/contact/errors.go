package contact

import (
	"errors"
	"fmt"

	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

var (
	ErrMissingClientID   = errors.New("missing client id")
	ErrNoIDs             = errors.New("no user ids provided")
	ErrNoUpdatableFields = errors.New("no updatable fields provided")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrRecordNotFound    = errors.New("record not found or does not belong to this client")
	ErrInvalidQuery      = errors.New("invalid query")
	ErrListRecords       = errors.New("failed to list records")
	ErrAddRecord         = errors.New("failed to add record")
	ErrUpdateRecord      = errors.New("failed to update record")
	ErrDeleteRecords     = errors.New("failed to delete records")
	ErrDashboard         = errors.New("failed to load dashboard")
)

// InvalidRecordError carries the field errors that rejected an add or update.
type InvalidRecordError struct {
	Errors []domain.ValidationError
}

func (e *InvalidRecordError) Error() string {
	if len(e.Errors) == 0 {
		return ErrInvalidRecord.Error()
	}
	first := e.Errors[0]
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRecord, first.Field, first.Message)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}
