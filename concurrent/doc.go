// Package concurrent runs independent tasks in parallel and exposes their
// outcomes through deterministic consumption policies.
//
// A Runner accumulates an ordered list of tasks, runs all of them against a
// bounded worker pool, and waits for every task to finish regardless of
// individual failures. The returned Results preserves submission order even
// though completion order is nondeterministic.
//
// # Failure taxonomy
//
// A task can fail two ways:
//
//   - By returning an error. This is the recoverable shape: a sole error is
//     surfaced wrapped in a *TaskError whose Unwrap returns the original, and
//     an error inside an aggregated list is included unwrapped.
//   - By panicking. Panics are fatal: the harness captures the panic value on
//     the worker, and re-panics with the original value (identity preserved,
//     never wrapped) when the failing result is consumed alone. Inside an
//     aggregated list a panic appears as a *PanicError carrying the original
//     value verbatim.
//
// No outcome is ever dropped: every submitted task contributes exactly one
// entry to the results, success or failure.
//
// # Consumption policies
//
// Results offers four ways to consume outcomes, all sharing the failure rules
// above but differing in when failures are inspected and how many surface:
//
//   - Stream: lazy, ordered, stops at the first failure encountered.
//   - Values: eager, all values or else the sole failure / every failure
//     aggregated in submission order.
//   - AssertNoFailures: Values without the values, for side-effect tasks.
//   - Collect / ParallelCollect: custom reduction with stop-at-first-failure
//     semantics, composable with arbitrary downstream accumulation.
//
// # Typical usage
//
//	err := concurrent.Run(ctx, func() error {
//		return cache.Put("key", "value")
//	}, 100)
//
// or, with distinct value-producing tasks:
//
//	results, err := concurrent.Running(readerA).
//		ConcurrentlyWith(readerB).
//		WithThreadCount(4).
//		Execute(ctx)
//	if err != nil {
//		return err
//	}
//	values, err := results.Values()
//
// # Resource model
//
// The worker pool is private to one Execute call: it is created, used, and
// fully drained before Execute returns. No pool is shared across calls, so
// concurrent scenarios in different tests cannot interfere through the
// harness. Execute blocks until all tasks finish; there is no cancellation of
// in-flight tasks. If the caller's context is canceled while waiting, Execute
// returns immediately with ctx.Err(), but tasks already dispatched run to
// completion on their workers (the runtime offers no safe preemption).
package concurrent
