package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arkenix/client-portal/internal/config"
	"github.com/arkenix/client-portal/internal/infrastructure/repository"
)

// Databases holds both handles on the same database: gorm for record-at-a-time work
// and a pgx pool for COPY based batch inserts.
type Databases struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

func OpenDatabases(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Databases, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if cfg.EnsureSchema {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			pool.Close()
			closeGorm(db)
			return nil, err
		}
		logger.Info("database schema ensured")
	}

	return &Databases{Gorm: db, Pool: pool}, nil
}

func (d *Databases) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

func (d *Databases) Close() {
	d.Pool.Close()
	closeGorm(d.Gorm)
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
