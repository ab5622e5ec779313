package migration

import (
	"context"
	"fmt"

	"langtrends/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the export schema. Export tables hold derived data only, so
// every run drops and recreates them.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Tables in dependency order
var Tables = []string{
	"report_runs",
	"tidy_records",
	"language_year_counts",
	"language_totals",
}

// Run resets and creates all export tables
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.Reset(ctx, db); err != nil {
		return err
	}

	steps := []struct {
		name string
		ddl  string
	}{
		{"report_runs", `
			CREATE TABLE report_runs (
				run_id TEXT PRIMARY KEY,
				source_path TEXT NOT NULL,
				source_hash TEXT NOT NULL,
				tidy_hash TEXT NOT NULL,
				tidy_rows INTEGER NOT NULL,
				created_at TEXT NOT NULL
			)`},
		{"tidy_records", `
			CREATE TABLE tidy_records (
				run_id TEXT NOT NULL,
				country TEXT NOT NULL,
				year INTEGER NOT NULL,
				slot INTEGER NOT NULL,
				language TEXT NOT NULL
			)`},
		{"language_year_counts", `
			CREATE TABLE language_year_counts (
				run_id TEXT NOT NULL,
				language TEXT NOT NULL,
				year INTEGER NOT NULL,
				observations INTEGER NOT NULL,
				PRIMARY KEY (run_id, language, year)
			)`},
		{"language_totals", `
			CREATE TABLE language_totals (
				run_id TEXT NOT NULL,
				language TEXT NOT NULL,
				observations INTEGER NOT NULL,
				position INTEGER NOT NULL,
				PRIMARY KEY (run_id, language)
			)`},
		{"indexes", `CREATE INDEX idx_tidy_records_language_year ON tidy_records (language, year)`},
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.ddl); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to create %s", step.name), err)
		}
	}
	return nil
}

// Reset drops all export tables
func (r *MigrationRunner) Reset(ctx context.Context, db *sqlx.DB) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", Tables[i])); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to drop table %s", Tables[i]), err)
		}
	}
	return nil
}
