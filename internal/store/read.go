package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/stampede/internal/harness"
)

// ErrRunNotFound is returned by GetRun for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is one persisted run, as read back from the store.
type RunRecord struct {
	RunID        string
	Scenario     string
	StartedAt    time.Time
	Duration     time.Duration
	TaskCount    int
	ThreadCount  int
	FailureCount int
	Passed       bool
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, scenario, started_at, duration_ms, task_count, thread_count, failure_count, passed
		FROM runs
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return records, nil
}

// GetRun returns one run with its failure entries.
func (s *Store) GetRun(ctx context.Context, runID string) (RunRecord, []harness.FailureEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, started_at, duration_ms, task_count, thread_count, failure_count, passed
		FROM runs WHERE id = ?
	`, runID)

	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, nil, fmt.Errorf("get run %q: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run %q: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT task_index, message FROM run_failures
		WHERE run_id = ? ORDER BY task_index
	`, runID)
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run %q: failures: %w", runID, err)
	}
	defer rows.Close()

	var failures []harness.FailureEntry
	for rows.Next() {
		var entry harness.FailureEntry
		if err := rows.Scan(&entry.Index, &entry.Message); err != nil {
			return RunRecord{}, nil, fmt.Errorf("get run %q: scan failure: %w", runID, err)
		}
		failures = append(failures, entry)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run %q: failures: %w", runID, err)
	}
	return rec, failures, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		rec        RunRecord
		startedAt  string
		durationMS int64
	)
	err := row.Scan(
		&rec.RunID,
		&rec.Scenario,
		&startedAt,
		&durationMS,
		&rec.TaskCount,
		&rec.ThreadCount,
		&rec.FailureCount,
		&rec.Passed,
	)
	if err != nil {
		return RunRecord{}, err
	}

	rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	return rec, nil
}
