package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/stampede/internal/harness"
)

// WriteReport persists one harness report atomically: the run row and all of
// its failure rows commit together or not at all.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same run
// twice is silently ignored (the failure rows share the run's primary key
// space, so they are skipped too).
func (s *Store) WriteReport(ctx context.Context, report *harness.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write report: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, scenario, started_at, duration_ms, task_count, thread_count, failure_count, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		report.RunID,
		report.Scenario,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Duration.Milliseconds(),
		report.TaskCount,
		report.ThreadCount,
		report.FailureCount,
		report.Passed,
	)
	if err != nil {
		return fmt.Errorf("write report: insert run: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write report: rows affected: %w", err)
	}
	if inserted > 0 {
		for _, failure := range report.Failures {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO run_failures (run_id, task_index, message)
				VALUES (?, ?, ?)
			`, report.RunID, failure.Index, failure.Message); err != nil {
				return fmt.Errorf("write report: insert failure %d: %w", failure.Index, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write report: commit: %w", err)
	}
	return nil
}
