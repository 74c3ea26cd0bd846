package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bidacafe/pos-gateway/internal/config"
	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the gateway's own tables.
// Bills, products and users live in the POS API and are never stored here.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(
		&entity.Session{},
		&entity.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// Sweeper deletes expired rows.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartSweeper removes expired sessions and idempotency keys every interval
// until ctx is cancelled.
func StartSweeper(ctx context.Context, interval time.Duration, log *zap.Logger, sweepers map[string]Sweeper) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for name, s := range sweepers {
					n, err := s.DeleteExpired(ctx)
					if err != nil {
						log.Warn("sweep failed", zap.String("table", name), zap.Error(err))
						continue
					}
					if n > 0 {
						log.Debug("swept expired rows", zap.String("table", name), zap.Int64("rows", n))
					}
				}
			}
		}
	}()
}
