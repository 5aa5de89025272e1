package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arkenix/client-portal/internal/application/importer"
	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

type UpdateRecordInput struct {
	ClientID string
	ID       string
	Data     map[string]any
}

type UpdateRecord interface {
	Execute(ctx context.Context, in UpdateRecordInput) (domain.Record, error)
}

type updateRecord struct {
	repo     domain.RecordRepository
	notifier domain.ChangeNotifier
}

func NewUpdateRecord(repo domain.RecordRepository, notifier domain.ChangeNotifier) UpdateRecord {
	return &updateRecord{repo: repo, notifier: notifier}
}

func (uc *updateRecord) Execute(ctx context.Context, in UpdateRecordInput) (domain.Record, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return domain.Record{}, ErrMissingClientID
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return domain.Record{}, ErrNoIDs
	}

	patch := domain.PatchFromMap(in.Data)
	if len(patch) == 0 {
		return domain.Record{}, ErrNoUpdatableFields
	}
	if errs := importer.ValidatePatch(patch, 1); len(errs) > 0 {
		return domain.Record{}, &InvalidRecordError{Errors: errs}
	}

	rec, err := uc.repo.UpdateByID(ctx, clientID, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Record{}, ErrRecordNotFound
		}
		return domain.Record{}, fmt.Errorf("%w: %v", ErrUpdateRecord, err)
	}

	if uc.notifier != nil {
		uc.notifier.NotifyDataChanged(ctx, clientID)
	}
	return rec, nil
}
