package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arkenix/client-portal/internal/infrastructure/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}
	return db
}

func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), os.Getenv("TEST_DATABASE_URL"))
	if err != nil {
		t.Fatalf("failed to open pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func cleanupClient(t *testing.T, db *gorm.DB, clientIDs ...string) {
	t.Helper()

	for _, id := range clientIDs {
		if err := db.Exec("DELETE FROM clients_user_data WHERE client_id = ?", id).Error; err != nil {
			t.Fatalf("cleanup clients_user_data failed: %v", err)
		}
		if err := db.Exec("DELETE FROM import_runs WHERE client_id = ?", id).Error; err != nil {
			t.Fatalf("cleanup import_runs failed: %v", err)
		}
	}
}
