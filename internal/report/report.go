package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/mediakit/internal/engine"
)

// Run identifies one batch execution.
type Run struct {
	ID         string
	Processor  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	processor   TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	total       INTEGER NOT NULL,
	succeeded   INTEGER NOT NULL,
	failed      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
	run_id TEXT NOT NULL,
	idx    INTEGER NOT NULL,
	input  TEXT NOT NULL,
	output TEXT,
	status TEXT NOT NULL,
	error  TEXT,
	PRIMARY KEY (run_id, idx)
);
`

// Write appends the run and its per-item results to the report database
// at path, creating the file and schema when needed.
func Write(path string, run Run, results []engine.Result) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open report database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create report schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin report transaction: %w", err)
	}
	defer tx.Rollback()

	s := engine.Summarize(results)
	_, err = tx.Exec(
		`INSERT INTO runs (id, processor, started_at, finished_at, total, succeeded, failed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Processor,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		s.Total, s.Succeeded, s.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run row: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO items (run_id, idx, input, output, status, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		status := "ok"
		var errMsg, outPath string
		if r.Failed() {
			status = "failed"
			errMsg = r.Err.Error()
		} else if r.Output != nil {
			outPath = r.Output.Path
		}
		if _, err := stmt.Exec(run.ID, r.Index, r.Input, outPath, status, errMsg); err != nil {
			return fmt.Errorf("insert item row %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}
	return nil
}
