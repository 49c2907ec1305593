package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial work order schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS work_orders (
					id TEXT PRIMARY KEY,
					number TEXT NOT NULL,
					builder_name TEXT NOT NULL DEFAULT '',
					project_name TEXT NOT NULL DEFAULT '',
					month TEXT NOT NULL DEFAULT '',
					year INTEGER,
					company_name TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					file_url TEXT NOT NULL UNIQUE,
					service_status TEXT NOT NULL,
					quality_score REAL NOT NULL DEFAULT 0,
					extracted_at DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_work_orders_company ON work_orders(company_name)`,
				`CREATE INDEX idx_work_orders_extracted_at ON work_orders(extracted_at)`,

				`CREATE TABLE IF NOT EXISTS service_lines (
					work_order_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					slot INTEGER NOT NULL,
					line INTEGER NOT NULL,
					service_type TEXT NOT NULL,
					date TEXT NOT NULL,
					quantity REAL,
					hours REAL,
					PRIMARY KEY (work_order_id, position),
					FOREIGN KEY (work_order_id) REFERENCES work_orders(id) ON DELETE CASCADE
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add categorizations",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS categorizations (
					work_order_id TEXT PRIMARY KEY,
					profile TEXT NOT NULL DEFAULT '',
					text TEXT NOT NULL,
					entries TEXT NOT NULL,
					caveats TEXT NOT NULL,
					categorized_at DATETIME NOT NULL,
					FOREIGN KEY (work_order_id) REFERENCES work_orders(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_categorizations_profile ON categorizations(profile)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Add pipeline run tracking",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					stage TEXT NOT NULL,
					started_at DATETIME NOT NULL,
					finished_at DATETIME,
					total INTEGER NOT NULL DEFAULT 0,
					processed INTEGER NOT NULL DEFAULT 0,
					skipped INTEGER NOT NULL DEFAULT 0,
					failed INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_runs_stage_started ON runs(stage, started_at)`,
			)
		},
	},
	{
		Version:     4,
		Description: "Keep the company name as read before correction",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE work_orders ADD COLUMN company_raw TEXT NOT NULL DEFAULT ''`,
				`UPDATE work_orders SET company_raw = company_name`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
