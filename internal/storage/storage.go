// Package storage opens the repositories selected by STORAGE_DRIVER.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osa911/hostelhub/internal/config"
	"github.com/osa911/hostelhub/internal/db"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/repository"
	"github.com/osa911/hostelhub/internal/repository/memory"
)

// Storage is an open set of repositories and, for Postgres, its pool
type Storage struct {
	Repos    *repository.Set
	Database *db.Database
}

// Open builds the repositories for cfg.StorageDriver. With migrate set, pending
// Postgres migrations are applied first.
func Open(ctx context.Context, cfg *config.Config, migrate bool) (*Storage, error) {
	logger := logging.GetLogger()

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return &Storage{Repos: memory.NewSet()}, nil

	case config.StoragePostgres:
		if migrate {
			version, err := db.Migrate(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			logger.Info("Database schema at version %d", version)
		}

		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Storage{Repos: repository.NewGormSet(database.DB), Database: database}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// SQL returns the underlying pool, or nil for in-memory storage
func (s *Storage) SQL() *sql.DB {
	if s.Database == nil {
		return nil
	}
	sqlDB, err := s.Database.DB.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}

func (s *Storage) Close() error {
	if s.Database == nil {
		return nil
	}
	return s.Database.Close()
}
