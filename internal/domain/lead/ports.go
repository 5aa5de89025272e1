package lead

import "context"

type SubmissionRepository interface {
	CreateContact(ctx context.Context, s ContactSubmission) error
	CreateWaitlistEntry(ctx context.Context, e WaitlistEntry) error
}
