package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/arkenix/client-portal/internal/application/importer"
	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

type AddRecordInput struct {
	ClientID string
	Data     map[string]any
}

type AddRecord interface {
	Execute(ctx context.Context, in AddRecordInput) (domain.Record, error)
}

type addRecord struct {
	repo     domain.RecordRepository
	notifier domain.ChangeNotifier
}

func NewAddRecord(repo domain.RecordRepository, notifier domain.ChangeNotifier) AddRecord {
	return &addRecord{repo: repo, notifier: notifier}
}

// Execute stores one contact for the client. The payload's id and client_id keys
// are ignored; the record is validated like an uploaded row.
func (uc *addRecord) Execute(ctx context.Context, in AddRecordInput) (domain.Record, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return domain.Record{}, ErrMissingClientID
	}

	patch := domain.PatchFromMap(in.Data)
	if len(patch) == 0 {
		return domain.Record{}, ErrNoUpdatableFields
	}

	var row domain.NormalizedRow
	row.Apply(patch)

	res := importer.ValidateRow(&row, 1, domain.AllowedFields)
	if res.Empty {
		return domain.Record{}, ErrNoUpdatableFields
	}
	if !res.IsValid {
		return domain.Record{}, &InvalidRecordError{Errors: res.Errors}
	}

	rec, err := uc.repo.Insert(ctx, clientID, row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %v", ErrAddRecord, err)
	}

	if uc.notifier != nil {
		uc.notifier.NotifyDataChanged(ctx, clientID)
	}
	return rec, nil
}
