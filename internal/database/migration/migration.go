package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

// EnsureMigrated applies every pending migration from the embedded sql
// directory. Already-applied versions are skipped by goose's version table.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	start := time.Now()
	log = log.With("component", "database")
	log.Info("db_migration_check", "status", "starting")

	fsys, err := fs.Sub(embedded, "sql")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		log.Error("db_migration_failed", "status", "error", "error_message", err.Error())
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		log.Info("db_migration_step",
			"status", "success",
			"migration_step", r.Source.Path,
			"version", r.Source.Version,
			"step_duration_ms", r.Duration.Milliseconds(),
		)
	}
	if err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("apply migrations: %w", err)
	}

	if len(results) == 0 {
		log.Info("db_migration_skip", "status", "success", "msg", "schema already up to date", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	log.Info("db_migration_success", "status", "success", "applied", len(results), "duration_ms", time.Since(start).Milliseconds())
	return nil
}
