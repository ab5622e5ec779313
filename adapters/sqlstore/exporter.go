package sqlstore

import (
	"context"
	"fmt"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/internal/errors"
	"langtrends/internal/migration"
	"langtrends/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the export database. driver is "sqlite" or "postgres".
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to export database", err)
	}
	if driver == "sqlite" {
		// one connection so :memory: databases are shared across statements
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Exporter writes the tidy table and aggregates of a run into SQL tables
type Exporter struct {
	db       *sqlx.DB
	migrator migration.Migrator
	log      *internal.Logger
}

// NewExporter creates a SQL exporter on an open connection
func NewExporter(db *sqlx.DB, logger *internal.Logger) *Exporter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Exporter{db: db, migrator: migration.NewRunner(), log: logger.With("sql")}
}

// Name implements ports.Exporter
func (e *Exporter) Name() string { return "sql" }

// Export implements ports.Exporter. Tables are recreated, then filled in one transaction.
func (e *Exporter) Export(ctx context.Context, bundle *ports.ReportBundle) ([]string, error) {
	if err := e.migrator.Run(ctx, e.db); err != nil {
		return nil, err
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.DatabaseError("failed to begin export transaction", err)
	}
	defer tx.Rollback()

	rep := bundle.Report
	runID := bundle.RunID.String()

	_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO report_runs
		(run_id, source_path, source_hash, tidy_hash, tidy_rows, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		runID, bundle.Source, bundle.SourceHash.String(), langreport.Fingerprint(rep.Tidy).String(), len(rep.Tidy), core.Now().String())
	if err != nil {
		return nil, errors.DatabaseError("failed to insert run", err)
	}

	if err := insertTidy(ctx, tx, runID, rep.Tidy); err != nil {
		return nil, err
	}
	if err := insertByYear(ctx, tx, runID, rep.ByYear); err != nil {
		return nil, err
	}
	if err := insertTotals(ctx, tx, runID, rep.Overall); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.DatabaseError("failed to commit export", err)
	}

	e.log.Info("Exported %d tidy rows, %d languages to %s", len(rep.Tidy), len(rep.Overall), e.db.DriverName())
	return migration.Tables, nil
}

func insertTidy(ctx context.Context, tx *sqlx.Tx, runID string, tidy []langreport.TidyRecord) error {
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO tidy_records (run_id, country, year, slot, language) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return errors.DatabaseError("failed to prepare tidy insert", err)
	}
	defer stmt.Close()

	for _, r := range tidy {
		if _, err := stmt.ExecContext(ctx, runID, r.Country, r.Year, r.Slot, r.Language); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to insert tidy row %+v", r), err)
		}
	}
	return nil
}

func insertByYear(ctx context.Context, tx *sqlx.Tx, runID string, by langreport.ByYear) error {
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO language_year_counts (run_id, language, year, observations) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return errors.DatabaseError("failed to prepare year count insert", err)
	}
	defer stmt.Close()

	for _, lang := range by.Languages() {
		for _, year := range langreport.Years() {
			n, ok := by[langreport.LanguageYear{Language: lang, Year: year}]
			if !ok {
				continue
			}
			if _, err := stmt.ExecContext(ctx, runID, lang, year, n); err != nil {
				return errors.DatabaseError("failed to insert year count", err)
			}
		}
	}
	return nil
}

func insertTotals(ctx context.Context, tx *sqlx.Tx, runID string, overall langreport.Overall) error {
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO language_totals (run_id, language, observations, position) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return errors.DatabaseError("failed to prepare totals insert", err)
	}
	defer stmt.Close()

	for i, lc := range overall.Ranked() {
		if _, err := stmt.ExecContext(ctx, runID, lc.Language, lc.Count, i+1); err != nil {
			return errors.DatabaseError("failed to insert language total", err)
		}
	}
	return nil
}
