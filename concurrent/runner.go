package concurrent

import (
	"context"
	"sync"
)

// Runner accumulates an ordered list of tasks and executes them all against a
// bounded worker pool. A Runner is single-use: configure it from one
// goroutine, call Execute once, then consume the returned Results.
//
// Configuration errors (nil task, count < 1, threadCount < 2) are recorded as
// a sticky first-error when the offending value is supplied; Execute reports
// that error before scheduling anything.
type Runner[T any] struct {
	tasks       []ValueTask[T]
	threadCount int
	err         error
}

// Running starts a runner with a single task.
func Running[T any](task ValueTask[T]) *Runner[T] {
	r := &Runner[T]{}
	if task == nil {
		r.fail(&ArgumentError{Name: "task", Value: nil, Reason: "must not be nil"})
		return r
	}
	r.tasks = append(r.tasks, task)
	return r
}

// RunningN starts a runner with the same task logically repeated count times.
// Each repetition is an independent invocation of task.
func RunningN[T any](task ValueTask[T], count int) *Runner[T] {
	r := &Runner[T]{}
	if task == nil {
		r.fail(&ArgumentError{Name: "task", Value: nil, Reason: "must not be nil"})
		return r
	}
	if count < 1 {
		r.fail(&ArgumentError{Name: "count", Value: count, Reason: "must be at least 1"})
		return r
	}
	for range count {
		r.tasks = append(r.tasks, task)
	}
	return r
}

// ConcurrentlyWith appends one more distinct task to the ordered task list.
func (r *Runner[T]) ConcurrentlyWith(task ValueTask[T]) *Runner[T] {
	if task == nil {
		r.fail(&ArgumentError{Name: "task", Value: nil, Reason: "must not be nil"})
		return r
	}
	r.tasks = append(r.tasks, task)
	return r
}

// WithThreadCount bounds the worker pool. Records an *ArgumentError when
// threadCount < 2.
func (r *Runner[T]) WithThreadCount(threadCount int) *Runner[T] {
	if threadCount < 2 {
		r.fail(&ArgumentError{Name: "threadCount", Value: threadCount, Reason: "must be at least 2"})
		return r
	}
	r.threadCount = threadCount
	return r
}

// WithSettings applies a validated Settings value: its thread count bounds
// the pool. The settings' count is consumed by RunWithSettings, not here.
func (r *Runner[T]) WithSettings(settings Settings) *Runner[T] {
	if !settings.Unbounded() {
		r.threadCount = settings.ThreadCount()
	}
	return r
}

// fail records the first configuration error. Later errors are dropped: the
// first one is what the caller needs to fix.
func (r *Runner[T]) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Execute runs every accumulated task on a pool of min(threadCount, task
// count) workers and blocks until all of them have completed, success or
// failure. One task's failure never cancels or skips another task.
//
// The returned Results is ordered by submission index, not completion order.
// The pool is private to this call and fully drained before it returns.
//
// Execute never returns an error because of task failures - those are
// captured into the Results. It returns an error only for harness-internal
// faults: a recorded configuration error, or ctx being canceled while
// waiting. In the cancellation case result aggregation is abandoned; tasks
// already dispatched still run to completion on their workers.
func (r *Runner[T]) Execute(ctx context.Context) (*Results[T], error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(r.tasks)
	workers := n
	if r.threadCount > 0 && r.threadCount < n {
		workers = r.threadCount
	}

	// Every index is enqueued up front so workers never block on the feed
	// side; each worker drains indices until the channel is exhausted.
	indices := make(chan int, n)
	for i := range n {
		indices <- i
	}
	close(indices)

	// Workers write disjoint slots, so no lock is needed around outcomes.
	outcomes := make([]outcome[T], n)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				outcomes[i] = runTask(i, r.tasks[i])
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Results[T]{outcomes: outcomes}, nil
}

// Run executes task count times under unbounded concurrency and asserts that
// no repetition failed: a sole panic is re-panicked identity-preserved, a
// sole error comes back wrapped in a *TaskError, and multiple failures come
// back as one *AggregateError in repetition order.
func Run(ctx context.Context, task ActionTask, count int) error {
	if task == nil {
		return &ArgumentError{Name: "task", Value: nil, Reason: "must not be nil"}
	}
	results, err := RunningN(asValueTask(task), count).Execute(ctx)
	if err != nil {
		return err
	}
	return results.AssertNoFailures()
}

// RunWithSettings is Run with repetition count and worker bound taken from an
// explicit Settings value.
func RunWithSettings(ctx context.Context, task ActionTask, settings Settings) error {
	if task == nil {
		return &ArgumentError{Name: "task", Value: nil, Reason: "must not be nil"}
	}
	if settings.Count() < 1 {
		return &ArgumentError{Name: "settings", Value: settings.Count(), Reason: "count must be at least 1; use NewSettings"}
	}
	results, err := RunningN(asValueTask(task), settings.Count()).
		WithSettings(settings).
		Execute(ctx)
	if err != nil {
		return err
	}
	return results.AssertNoFailures()
}

// RunAll executes each distinct task once under unbounded concurrency and
// asserts that none failed, with the same failure surfacing as Run.
func RunAll(ctx context.Context, tasks ...ActionTask) error {
	if len(tasks) == 0 {
		return &ArgumentError{Name: "tasks", Value: 0, Reason: "at least one task is required"}
	}
	r := &Runner[struct{}]{}
	for _, task := range tasks {
		if task == nil {
			return &ArgumentError{Name: "task", Value: nil, Reason: "must not be nil"}
		}
		r.ConcurrentlyWith(asValueTask(task))
	}
	results, err := r.Execute(ctx)
	if err != nil {
		return err
	}
	return results.AssertNoFailures()
}
