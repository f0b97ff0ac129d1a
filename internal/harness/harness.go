// Package harness executes stress scenarios through the concurrent runner
// and turns the outcome into a Report.
//
// The harness owns the boundary between scenario definitions (what to run)
// and the concurrent library (how to run it): it builds one task per
// scenario repetition or task spec, submits them all to a single Execute
// call, and unpacks the aggregated failure shapes back into per-task report
// entries.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/stampede/concurrent"
	"github.com/roach88/stampede/internal/scenario"
)

// RunIDGenerator produces identifiers for harness runs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDRunID generates time-sortable UUIDv7 run IDs.
//
// Thread-safety: UUIDRunID is stateless and safe for concurrent use.
type UUIDRunID struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (UUIDRunID) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Harness runs scenarios. The zero configuration (New with no options) uses
// UUIDv7 run IDs and discards logs.
type Harness struct {
	logger *slog.Logger
	runIDs RunIDGenerator
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes harness progress logging to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithRunIDGenerator overrides run ID generation, e.g. with a fixed
// generator for deterministic golden tests.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(h *Harness) { h.runIDs = gen }
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs: UUIDRunID{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes one scenario and reports the outcome.
//
// All tasks are submitted to a single runner so the scenario exercises real
// concurrency: a bounded pool when the scenario sets threads, one worker per
// task otherwise. Task failures never abort the run - they are collected
// into the report, and the report passes when the failure count stays within
// the scenario's tolerance.
//
// Run returns an error only for harness-internal faults (context canceled
// while waiting, impossible configuration), mirroring the library's Execute
// contract.
func (h *Harness) Run(ctx context.Context, sc *scenario.Scenario) (*Report, error) {
	runID := h.runIDs.Generate()
	h.logger.Info("scenario started",
		"run_id", runID,
		"scenario", sc.Name,
		"tasks", sc.TaskCount(),
		"threads", sc.Threads,
	)

	runner := buildRunner(ctx, sc)

	started := time.Now()
	results, err := runner.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("execute scenario %q: %w", sc.Name, err)
	}
	duration := time.Since(started)

	failures := collectFailures(results.AssertNoFailures())

	report := &Report{
		RunID:        runID,
		Scenario:     sc.Name,
		TaskCount:    sc.TaskCount(),
		ThreadCount:  sc.Threads,
		StartedAt:    started.UTC(),
		Duration:     duration,
		Failures:     failures,
		FailureCount: len(failures),
		Passed:       len(failures) <= sc.MaxFailures(),
	}

	h.logger.Info("scenario finished",
		"run_id", runID,
		"scenario", sc.Name,
		"failures", report.FailureCount,
		"passed", report.Passed,
		"duration", duration,
	)
	return report, nil
}

// buildRunner assembles one task per repetition or task spec, in submission
// order, so report indexes line up with the scenario definition.
func buildRunner(ctx context.Context, sc *scenario.Scenario) *concurrent.Runner[struct{}] {
	var tasks []concurrent.ValueTask[struct{}]
	if len(sc.Tasks) > 0 {
		for i, spec := range sc.Tasks {
			tasks = append(tasks, valueTask(commandTask(ctx, i, spec.Command)))
		}
	} else {
		for i := range sc.Count {
			tasks = append(tasks, valueTask(commandTask(ctx, i, sc.Command)))
		}
	}

	runner := concurrent.Running(tasks[0])
	for _, task := range tasks[1:] {
		runner.ConcurrentlyWith(task)
	}
	if sc.Threads > 0 {
		runner.WithThreadCount(sc.Threads)
	}
	return runner
}

// valueTask adapts an ActionTask for the generic runner.
func valueTask(task concurrent.ActionTask) concurrent.ValueTask[struct{}] {
	return func() (struct{}, error) {
		return struct{}{}, task()
	}
}

// collectFailures unpacks the library's failure shapes into ordered report
// entries: nil for a clean run, *TaskError for a sole failure, and
// *AggregateError for several. Entries arrive in submission order because
// the aggregate preserves it.
func collectFailures(err error) []FailureEntry {
	if err == nil {
		return nil
	}

	var agg *concurrent.AggregateError
	if errors.As(err, &agg) {
		entries := make([]FailureEntry, 0, len(agg.Failures))
		for _, failure := range agg.Failures {
			entries = append(entries, toEntry(failure))
		}
		return entries
	}
	return []FailureEntry{toEntry(err)}
}

// toEntry extracts the task index recorded by the command wrapper. Failures
// that somehow lack one keep index -1 rather than being dropped.
func toEntry(err error) FailureEntry {
	var tf *TaskFailure
	if errors.As(err, &tf) {
		return FailureEntry{Index: tf.Index, Message: tf.Error()}
	}
	return FailureEntry{Index: -1, Message: err.Error()}
}
