package db

import (
	"context"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/osa911/hostelhub/internal/db/migrations"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending migration to the database at url.
// It returns the schema version after the run.
func Migrate(ctx context.Context, url string) (int64, error) {
	sqlDB, err := goose.OpenDBWithDriver("postgres", url)
	if err != nil {
		return 0, fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{logging.GetLogger()})

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// gooseLogger routes goose output through the application logger
type gooseLogger struct {
	logger *logging.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(format, v...)
	panic(fmt.Sprintf(format, v...))
}
