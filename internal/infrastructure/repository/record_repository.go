package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arkenix/client-portal/internal/domain/contact"
	"github.com/arkenix/client-portal/internal/infrastructure/db/models"
)

// RecordRepository serves single-record reads and mutations on clients_user_data.
// Every statement carries the client_id predicate.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) ListByClient(ctx context.Context, clientID string) ([]contact.Record, error) {
	var rows []models.ClientRecord

	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]contact.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

func (r *RecordRepository) Insert(ctx context.Context, clientID string, row contact.NormalizedRow) (contact.Record, error) {
	model := fromRow(uuid.NewString(), clientID, row)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return contact.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return toRecord(model), nil
}

func (r *RecordRepository) UpdateByID(ctx context.Context, clientID, id string, patch contact.Patch) (contact.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return contact.Record{}, contact.ErrRecordNotFound
	}

	updates := make(map[string]any, len(patch)+1)
	for f, v := range patch {
		updates[string(f)] = v
	}
	updates["updated_at"] = time.Now().UTC()

	var model models.ClientRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ClientRecord{}).
			Where("client_id = ? AND id = ?", clientID, id).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return contact.ErrRecordNotFound
		}

		if err := tx.First(&model, "client_id = ? AND id = ?", clientID, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contact.ErrRecordNotFound
			}
			return fmt.Errorf("reload record: %w", err)
		}
		return nil
	})
	if err != nil {
		return contact.Record{}, err
	}

	return toRecord(model), nil
}

// DeleteByIDs removes the caller's rows among ids and returns the ids actually
// deleted. Ids that are not UUIDs cannot match and are skipped.
func (r *RecordRepository) DeleteByIDs(ctx context.Context, clientID string, ids []string) ([]string, error) {
	candidates := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return []string{}, nil
	}

	var deleted []models.ClientRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("client_id = ? AND id IN ?", clientID, candidates).
		Delete(&deleted).Error
	if err != nil {
		return nil, fmt.Errorf("delete records: %w", err)
	}

	deletedIDs := make([]string, 0, len(deleted))
	for _, row := range deleted {
		deletedIDs = append(deletedIDs, row.ID)
	}
	return deletedIDs, nil
}

func fromRow(id, clientID string, row contact.NormalizedRow) models.ClientRecord {
	return models.ClientRecord{
		ID:            id,
		ClientID:      clientID,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Title:         row.Title,
		OfficialEmail: row.OfficialEmail,
		MobileNumber:  row.MobileNumber,
		Company:       row.Company,
		Industry:      row.Industry,
		UserType:      row.UserType,
	}
}

func toRecord(m models.ClientRecord) contact.Record {
	return contact.Record{
		ID:       m.ID,
		ClientID: m.ClientID,
		NormalizedRow: contact.NormalizedRow{
			FirstName:     m.FirstName,
			LastName:      m.LastName,
			Title:         m.Title,
			OfficialEmail: m.OfficialEmail,
			MobileNumber:  m.MobileNumber,
			Company:       m.Company,
			Industry:      m.Industry,
			UserType:      m.UserType,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
