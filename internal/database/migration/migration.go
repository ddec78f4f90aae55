// Package migration creates the conversion history schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_conversions",
		SQL: `CREATE TABLE IF NOT EXISTS conversions (
  id              UUID        PRIMARY KEY,
  source_filename TEXT        NOT NULL,
  result_filename TEXT        NOT NULL,
  mode            TEXT        NOT NULL CHECK (mode IN ('text', 'image')),
  page_start      INTEGER     CHECK (page_start >= 1),
  page_end        INTEGER     CHECK (page_end >= page_start),
  page_count      INTEGER     NOT NULL DEFAULT 0 CHECK (page_count >= 0),
  source_size     BIGINT      NOT NULL CHECK (source_size >= 0),
  result_size     BIGINT      NOT NULL DEFAULT 0 CHECK (result_size >= 0),
  status          TEXT        NOT NULL,
  error           TEXT        NOT NULL DEFAULT '',
  storage_path    TEXT        NOT NULL DEFAULT '',
  duration_ms     BIGINT      NOT NULL DEFAULT 0,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_conversions_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions (created_at);`,
	},
	{
		Name: "create_index_conversions_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions (status);`,
	},
}

// EnsureMigrated creates the conversions table and its indexes unless the table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.conversions') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed", "error_message", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	log.Info("db_migration_start")
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step", "migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	log.Info("db_migration_success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
