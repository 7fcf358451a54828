// Package history persists optimization runs and export artifacts in an
// embedded SQLite database.  The log is append-only: rows are inserted on
// completed runs/exports and queried by the CLI and HTTP API, never updated.
package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS optimization_runs (
	run_id         TEXT PRIMARY KEY,
	min_strength   REAL NOT NULL,
	max_cost       REAL NOT NULL,
	solution_count INTEGER NOT NULL,
	duration_ms    INTEGER NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS export_artifacts (
	artifact_id  TEXT PRIMARY KEY,
	run_id       TEXT,
	batch_number INTEGER NOT NULL,
	filename     TEXT NOT NULL,
	size_bytes   INTEGER NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES optimization_runs(run_id)
);
`

// RunRecord is one completed optimization run.
type RunRecord struct {
	RunID         string
	MinStrength   float64
	MaxCost       float64
	SolutionCount int
	Duration      time.Duration
	CreatedAt     time.Time
}

// ArtifactRecord is one written report artifact.
type ArtifactRecord struct {
	ArtifactID  string
	RunID       string
	BatchNumber int
	Filename    string
	SizeBytes   int64
	CreatedAt   time.Time
}

// Store manages the run-history database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path and runs the
// schema migration.  ":memory:" is accepted for tests.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to open history database")
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to enable WAL")
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to enable foreign keys")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to migrate history schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a completed optimization run and returns it with its
// generated run ID and timestamp filled in.
func (s *Store) RecordRun(minStrength, maxCost float64, solutionCount int, duration time.Duration) (RunRecord, error) {
	rec := RunRecord{
		RunID:         uuid.New().String(),
		MinStrength:   minStrength,
		MaxCost:       maxCost,
		SolutionCount: solutionCount,
		Duration:      duration,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO optimization_runs (run_id, min_strength, max_cost, solution_count, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.MinStrength, rec.MaxCost, rec.SolutionCount,
		rec.Duration.Milliseconds(), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, errors.Wrap(err, errors.CodeHistoryWriteFailed, "failed to record optimization run")
	}
	return rec, nil
}

// RecordArtifact inserts a written export artifact.  runID may be empty when
// the export happened without a recorded run (e.g. replayed state).
func (s *Store) RecordArtifact(runID string, batchNumber int, filename string, sizeBytes int64) (ArtifactRecord, error) {
	rec := ArtifactRecord{
		ArtifactID:  uuid.New().String(),
		RunID:       runID,
		BatchNumber: batchNumber,
		Filename:    filename,
		SizeBytes:   sizeBytes,
		CreatedAt:   time.Now().UTC(),
	}

	var runPtr interface{}
	if rec.RunID != "" {
		runPtr = rec.RunID
	}

	_, err := s.db.Exec(
		`INSERT INTO export_artifacts (artifact_id, run_id, batch_number, filename, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ArtifactID, runPtr, rec.BatchNumber, rec.Filename, rec.SizeBytes,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return ArtifactRecord{}, errors.Wrap(err, errors.CodeHistoryWriteFailed, "failed to record export artifact")
	}
	return rec, nil
}

// ListRuns returns the most recent optimization runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, min_strength, max_cost, solution_count, duration_ms, created_at
		 FROM optimization_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryQueryFailed, "failed to list optimization runs")
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var durationMS int64
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.MinStrength, &rec.MaxCost, &rec.SolutionCount, &durationMS, &createdStr); err != nil {
			return nil, errors.Wrap(err, errors.CodeHistoryQueryFailed, "failed to scan run row")
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryQueryFailed, "failed to iterate run rows")
	}
	return records, nil
}

// ListArtifacts returns the most recent export artifacts, newest first.
func (s *Store) ListArtifacts(limit int) ([]ArtifactRecord, error) {
	rows, err := s.db.Query(
		`SELECT artifact_id, COALESCE(run_id, ''), batch_number, filename, size_bytes, created_at
		 FROM export_artifacts ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryQueryFailed, "failed to list export artifacts")
	}
	defer rows.Close()

	var records []ArtifactRecord
	for rows.Next() {
		var rec ArtifactRecord
		var createdStr string
		if err := rows.Scan(&rec.ArtifactID, &rec.RunID, &rec.BatchNumber, &rec.Filename, &rec.SizeBytes, &createdStr); err != nil {
			return nil, errors.Wrap(err, errors.CodeHistoryQueryFailed, "failed to scan artifact row")
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryQueryFailed, "failed to iterate artifact rows")
	}
	return records, nil
}
