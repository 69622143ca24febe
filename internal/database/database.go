// Package database opens the storage connections with a bounded startup
// retry: fixed attempt count, fixed delay, fail hard after exhaustion.
package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spicelab/recipebox/config"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

// OpenGorm connects to the relational backend selected by the config.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	var target string
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		dial = postgres.Open(cfg.PostgresDSN)
		target = "postgres"
	case config.BackendSQLite:
		dial = sqlite.Open(cfg.SQLitePath)
		target = "sqlite:" + cfg.SQLitePath
	default:
		return nil, fmt.Errorf("backend %q is not relational", cfg.StorageBackend)
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		slog.Info("connecting to database", "target", target, "attempt", attempt, "of", connectAttempts)
		db, err = gorm.Open(dial, &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			slog.Info("database connected", "target", target)
			return db, nil
		}
		slog.Warn("database connection failed", "attempt", attempt, "err", err)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	return nil, fmt.Errorf("connect to %s after %d attempts: %w", target, connectAttempts, err)
}
