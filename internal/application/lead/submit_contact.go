package lead

import (
	"context"
	"fmt"

	domain "github.com/arkenix/client-portal/internal/domain/lead"
)

type SubmitContactInput struct {
	Name    string
	Email   string
	Company string
	Message string
	Source  string
}

type SubmitContact interface {
	Execute(ctx context.Context, in SubmitContactInput) error
}

type submitContact struct {
	repo domain.SubmissionRepository
}

func NewSubmitContact(repo domain.SubmissionRepository) SubmitContact {
	return &submitContact{repo: repo}
}

func (uc *submitContact) Execute(ctx context.Context, in SubmitContactInput) error {
	submission, err := domain.NewContactSubmission(in.Name, in.Email, in.Company, in.Message, in.Source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	if err := uc.repo.CreateContact(ctx, submission); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveSubmission, err)
	}
	return nil
}
