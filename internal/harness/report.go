package harness

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Report is the outcome of one scenario run.
type Report struct {
	// RunID identifies this run (UUIDv7 in production, fixed in tests).
	RunID string `json:"run_id"`

	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// TaskCount is the number of submitted tasks.
	TaskCount int `json:"task_count"`

	// ThreadCount is the configured worker bound; zero means unbounded.
	ThreadCount int `json:"thread_count"`

	// StartedAt is the UTC start time of the execution.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time of the execution.
	Duration time.Duration `json:"duration"`

	// Failures lists every failed task in submission order.
	Failures []FailureEntry `json:"failures,omitempty"`

	// FailureCount is len(Failures), denormalized for rendering and storage.
	FailureCount int `json:"failure_count"`

	// Passed reports whether FailureCount stayed within the scenario's
	// tolerance.
	Passed bool `json:"passed"`
}

// FailureEntry describes one failed task.
type FailureEntry struct {
	// Index is the task's submission position, or -1 when unattributable.
	Index int `json:"index"`

	// Message is the rendered failure.
	Message string `json:"message"`
}

// Snapshot renders the report as deterministic JSON for golden comparison.
// Timing fields are excluded (they vary run to run) and all strings are NFC
// normalized so the same logical report is byte-identical across platforms.
func (r *Report) Snapshot() ([]byte, error) {
	type snapshotEntry struct {
		Index   int    `json:"index"`
		Message string `json:"message"`
	}
	type snapshot struct {
		RunID        string          `json:"run_id"`
		Scenario     string          `json:"scenario"`
		TaskCount    int             `json:"task_count"`
		ThreadCount  int             `json:"thread_count"`
		Failures     []snapshotEntry `json:"failures"`
		FailureCount int             `json:"failure_count"`
		Passed       bool            `json:"passed"`
	}

	s := snapshot{
		RunID:        norm.NFC.String(r.RunID),
		Scenario:     norm.NFC.String(r.Scenario),
		TaskCount:    r.TaskCount,
		ThreadCount:  r.ThreadCount,
		Failures:     []snapshotEntry{},
		FailureCount: r.FailureCount,
		Passed:       r.Passed,
	}
	for _, f := range r.Failures {
		s.Failures = append(s.Failures, snapshotEntry{
			Index:   f.Index,
			Message: norm.NFC.String(f.Message),
		})
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report snapshot: %w", err)
	}
	return append(data, '\n'), nil
}
