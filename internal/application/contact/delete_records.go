package contact

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

type DeleteRecordsInput struct {
	ClientID string
	IDs      []string
}

type DeleteRecordsOutput struct {
	Deleted    int      `json:"deleted"`
	DeletedIDs []string `json:"deleted_ids"`
}

type DeleteRecords interface {
	Execute(ctx context.Context, in DeleteRecordsInput) (DeleteRecordsOutput, error)
}

type deleteRecords struct {
	repo     domain.RecordRepository
	notifier domain.ChangeNotifier
}

func NewDeleteRecords(repo domain.RecordRepository, notifier domain.ChangeNotifier) DeleteRecords {
	return &deleteRecords{repo: repo, notifier: notifier}
}

// Execute deletes only rows that match both an id and the client. Ids owned by
// other clients are left alone and simply do not appear in DeletedIDs.
func (uc *deleteRecords) Execute(ctx context.Context, in DeleteRecordsInput) (DeleteRecordsOutput, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return DeleteRecordsOutput{}, ErrMissingClientID
	}

	ids := make([]string, 0, len(in.IDs))
	for _, id := range in.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return DeleteRecordsOutput{}, ErrNoIDs
	}

	deleted, err := uc.repo.DeleteByIDs(ctx, clientID, ids)
	if err != nil {
		return DeleteRecordsOutput{}, fmt.Errorf("%w: %v", ErrDeleteRecords, err)
	}
	if deleted == nil {
		deleted = []string{}
	}

	if len(deleted) > 0 && uc.notifier != nil {
		uc.notifier.NotifyDataChanged(ctx, clientID)
	}

	return DeleteRecordsOutput{Deleted: len(deleted), DeletedIDs: deleted}, nil
}
