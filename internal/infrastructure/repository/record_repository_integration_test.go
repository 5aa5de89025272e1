package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arkenix/client-portal/internal/domain/contact"
	"github.com/arkenix/client-portal/internal/infrastructure/repository"
)

func TestRecordRepositoryLifecycleIntegration(t *testing.T) {
	db := openTestDB(t)
	cleanupClient(t, db, "it-client-a")
	defer cleanupClient(t, db, "it-client-a")

	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	created, err := repo.Insert(ctx, "it-client-a", contact.NormalizedRow{FirstName: "Ada", OfficialEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if created.ID == "" || created.ClientID != "it-client-a" {
		t.Fatalf("unexpected record: %+v", created)
	}

	updated, err := repo.UpdateByID(ctx, "it-client-a", created.ID, contact.Patch{contact.FieldCompany: "Acme"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Company != "Acme" || updated.FirstName != "Ada" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	records, err := repo.ListByClient(ctx, "it-client-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestRecordRepositoryScopesMutationsByClientIntegration(t *testing.T) {
	db := openTestDB(t)
	cleanupClient(t, db, "it-client-a", "it-client-b")
	defer cleanupClient(t, db, "it-client-a", "it-client-b")

	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	owned, err := repo.Insert(ctx, "it-client-a", contact.NormalizedRow{OfficialEmail: "a@example.com"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	deleted, err := repo.DeleteByIDs(ctx, "it-client-b", []string{owned.ID, "42"})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(deleted) != 0 {
		t.Fatalf("expected nothing deleted for another client, got %v", deleted)
	}

	_, err = repo.UpdateByID(ctx, "it-client-b", owned.ID, contact.Patch{contact.FieldTitle: "CEO"})
	if !errors.Is(err, contact.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	records, err := repo.ListByClient(ctx, "it-client-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 || records[0].Title != "" {
		t.Fatalf("record of client a changed: %+v", records)
	}

	deleted, err = repo.DeleteByIDs(ctx, "it-client-a", []string{owned.ID})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != owned.ID {
		t.Fatalf("unexpected deleted ids: %v", deleted)
	}
}

func TestRecordBulkRepositoryInsertBatchIntegration(t *testing.T) {
	db := openTestDB(t)
	pool := openTestPool(t)
	cleanupClient(t, db, "it-client-bulk")
	defer cleanupClient(t, db, "it-client-bulk")

	repo := repository.NewRecordBulkRepository(pool)
	rows := []contact.NormalizedRow{
		{FirstName: "A", OfficialEmail: "a@example.com"},
		{FirstName: "B", OfficialEmail: "b@example.com"},
		{FirstName: "C", OfficialEmail: "c@example.com"},
	}

	inserted, err := repo.InsertBatch(context.Background(), "it-client-bulk", rows)
	if err != nil {
		t.Fatalf("insert batch failed: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("expected 3 inserted rows, got %d", inserted)
	}

	var count int64
	if err := db.Table("clients_user_data").Where("client_id = ?", "it-client-bulk").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 stored rows, got %d", count)
	}
}
