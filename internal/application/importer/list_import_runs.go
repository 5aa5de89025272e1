package importer

import (
	"context"
	"fmt"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

const defaultHistoryLimit = 20

type ListImportRuns interface {
	Execute(ctx context.Context, clientID string) ([]contact.ImportRun, error)
}

type listImportRuns struct {
	repo contact.ImportRunRepository
}

func NewListImportRuns(repo contact.ImportRunRepository) ListImportRuns {
	return &listImportRuns{repo: repo}
}

func (uc *listImportRuns) Execute(ctx context.Context, clientID string) ([]contact.ImportRun, error) {
	if clientID == "" {
		return nil, ErrMissingClientID
	}
	runs, err := uc.repo.ListByClient(ctx, clientID, defaultHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	return runs, nil
}
