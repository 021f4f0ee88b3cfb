// Package index implements the index sidecar: a one-row-per-run SQLite
// table recording ARCH, KERNELVERSION, the kernel tree name derived from
// PWD, the run's correlating id, and its outcome. A full SQLite indexer
// that queries across many kernel trees is a separate, external
// collaborator; this sidecar only ever appends one row per run.
package index

import (
	"database/sql"
	"path/filepath"
	"time"

	// Registers the sqlite3 driver under database/sql.
	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	kernel_tree   TEXT NOT NULL,
	arch          TEXT,
	kernelversion TEXT,
	started_at    TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	error_count   INTEGER NOT NULL
)`

// Sidecar appends one row per engine run to a SQLite database.
type Sidecar struct {
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at path and ensures
// the runs table exists.
func Open(path string) (*Sidecar, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}

	return &Sidecar{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Sidecar) Close() error { return s.db.Close() }

// Run is one row: the run's correlating id, the environment the engine
// read it from, and the outcome of applying the journal.
type Run struct {
	RunID         string
	PWD           string
	Arch          string
	KernelVersion string
	Outcome       string
	ErrorCount    int
}

// KernelTreeName derives the kernel tree name from PWD: the base name of
// the working directory the engine was invoked from.
func (r Run) KernelTreeName() string {
	return filepath.Base(r.PWD)
}

// Record inserts one row for a completed run.
func (s *Sidecar) Record(r Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, kernel_tree, arch, kernelversion, started_at, outcome, error_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.KernelTreeName(), r.Arch, r.KernelVersion, time.Now().UTC().Format(time.RFC3339), r.Outcome, r.ErrorCount,
	)

	return err
}
