package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/arkenix/client-portal/internal/domain/contact"
	"github.com/arkenix/client-portal/internal/infrastructure/db/models"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Create(ctx context.Context, run contact.ImportRun) (string, error) {
	row := models.ImportRun{
		ClientID:      run.ClientID,
		Source:        run.Source,
		Status:        run.Status,
		TotalRows:     run.TotalRows,
		Inserted:      run.Inserted,
		FailedBatches: run.FailedBatches,
	}
	if run.ErrorMessage != "" {
		msg := run.ErrorMessage
		row.ErrorMessage = &msg
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create import run: %w", err)
	}

	return row.ID, nil
}

func (r *ImportRunRepository) ListByClient(ctx context.Context, clientID string, limit int) ([]contact.ImportRun, error) {
	var rows []models.ImportRun

	query := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}

	runs := make([]contact.ImportRun, 0, len(rows))
	for _, row := range rows {
		run := contact.ImportRun{
			ID:            row.ID,
			ClientID:      row.ClientID,
			Source:        row.Source,
			Status:        row.Status,
			TotalRows:     row.TotalRows,
			Inserted:      row.Inserted,
			FailedBatches: row.FailedBatches,
			CreatedAt:     row.CreatedAt,
		}
		if row.ErrorMessage != nil {
			run.ErrorMessage = *row.ErrorMessage
		}
		runs = append(runs, run)
	}
	return runs, nil
}
