package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// DocumentCreatedChannel is the NOTIFY channel carrying the path of each inserted document.
const DocumentCreatedChannel = "document_created"

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp applies every pending embedded migration. An up-to-date schema is not an error.
func MigrateUp(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	return runMigrator(ctx, databaseURL, logger, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the last steps migrations.
func MigrateDown(ctx context.Context, databaseURL string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("migrate down: steps must be > 0")
	}
	return runMigrator(ctx, databaseURL, logger, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
}

func runMigrator(ctx context.Context, databaseURL string, logger *slog.Logger, run func(*migrate.Migrate) error) error {
	src, err := migrationSource()
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_err", sourceErr, "db_err", dbErr)
		}
	}()
	m.Log = migrateLogger{logger: logger}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err := run(m); err != nil {
		return err
	}
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("schema has no migrations applied")
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	default:
		logger.Info("schema migrated", "version", version, "dirty", dirty)
	}
	return nil
}

func migrationSource() (source.Driver, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return src, nil
}

// migrateLogger routes migrate's progress lines to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
