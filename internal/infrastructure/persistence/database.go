// Package persistence provides database setup shared by every storage adapter.
package persistence

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/config"
	gormmodels "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/persistence/gorm"
)

// OpenDatabase opens the configured database, applies pool settings and
// runs auto-migration. SQLite is used for local development and tests,
// PostgreSQL everywhere else.
func OpenDatabase(cfg *config.Config, log *zap.Logger) (*gormlib.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	gormConfig := &gormlib.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var db *gormlib.DB
	var err error
	switch cfg.Database.Driver {
	case "sqlite":
		path := cfg.Database.Database
		if path == "" {
			path = ":memory:"
		}
		db, err = gormlib.Open(sqlite.Open(path), gormConfig)
	case "postgres":
		db, err = gormlib.Open(postgres.Open(cfg.GetDSN()), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormmodels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("database ready",
		zap.String("driver", cfg.Database.Driver),
	)
	return db, nil
}
