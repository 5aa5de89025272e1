package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/arkenix/client-portal/internal/domain/lead"
	"github.com/arkenix/client-portal/internal/infrastructure/db/models"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) CreateContact(ctx context.Context, s lead.ContactSubmission) error {
	row := models.ContactSubmission{
		Name:    s.Name,
		Email:   s.Email,
		Message: s.Message,
		Source:  s.Source,
	}
	if s.Company != "" {
		company := s.Company
		row.Company = &company
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create contact submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) CreateWaitlistEntry(ctx context.Context, e lead.WaitlistEntry) error {
	row := models.WaitlistSubmission{Name: e.Name, Email: e.Email}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create waitlist entry: %w", err)
	}
	return nil
}
