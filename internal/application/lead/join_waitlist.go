package lead

import (
	"context"
	"fmt"

	domain "github.com/arkenix/client-portal/internal/domain/lead"
)

type JoinWaitlistInput struct {
	Name  string
	Email string
}

type JoinWaitlist interface {
	Execute(ctx context.Context, in JoinWaitlistInput) error
}

type joinWaitlist struct {
	repo domain.SubmissionRepository
}

func NewJoinWaitlist(repo domain.SubmissionRepository) JoinWaitlist {
	return &joinWaitlist{repo: repo}
}

func (uc *joinWaitlist) Execute(ctx context.Context, in JoinWaitlistInput) error {
	entry, err := domain.NewWaitlistEntry(in.Name, in.Email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	if err := uc.repo.CreateWaitlistEntry(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveSubmission, err)
	}
	return nil
}
