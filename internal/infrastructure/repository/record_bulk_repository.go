package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

var recordCopyColumns = []string{
	"id",
	"client_id",
	"first_name",
	"last_name",
	"title",
	"official_email",
	"mobile_number",
	"company",
	"industry",
	"user_type",
	"created_at",
	"updated_at",
}

// RecordBulkRepository streams one import batch into clients_user_data with COPY.
// A batch either lands completely or not at all.
type RecordBulkRepository struct {
	pool *pgxpool.Pool
}

func NewRecordBulkRepository(pool *pgxpool.Pool) *RecordBulkRepository {
	return &RecordBulkRepository{pool: pool}
}

func (r *RecordBulkRepository) InsertBatch(ctx context.Context, clientID string, rows []contact.NormalizedRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	copyRows := make([][]any, 0, len(rows))
	for _, row := range rows {
		copyRows = append(copyRows, []any{
			uuid.NewString(),
			clientID,
			row.FirstName,
			row.LastName,
			row.Title,
			row.OfficialEmail,
			row.MobileNumber,
			row.Company,
			row.Industry,
			row.UserType,
			now,
			now,
		})
	}

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"clients_user_data"},
		recordCopyColumns,
		pgx.CopyFromRows(copyRows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}

	return copied, nil
}
