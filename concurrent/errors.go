package concurrent

import (
	"errors"
	"fmt"
	"strings"
)

// ArgumentError reports an invalid configuration value: a non-positive task
// count, a thread count below two, or a nil task. Configuration errors are
// detected when the offending value is supplied, so a badly configured runner
// never starts work.
type ArgumentError struct {
	// Name identifies the offending parameter (e.g. "count", "threadCount").
	Name string

	// Value is the rejected value.
	Value any

	// Reason explains the constraint that was violated.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}

// IsArgumentError returns true if the error is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// TaskError wraps the error of a single failed task. It is the shape surfaced
// when exactly one task failed with an error: the original error is preserved
// as the cause, reachable through Unwrap, errors.Is, and errors.As.
//
// Inside an aggregated failure list, task errors appear unwrapped; TaskError
// is used only for sole-failure surfacing.
type TaskError struct {
	// Index is the failing task's position in submission order (0-based).
	Index int

	// Err is the original error returned by the task.
	Err error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("concurrent task %d failed: %v", e.Index, e.Err)
}

// Unwrap returns the original task error.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// PanicError represents a captured task panic inside an aggregated failure
// list. Value is the original panic value, verbatim. When a panic is the sole
// failure it is not wrapped at all: the consuming policy re-panics with Value
// directly.
type PanicError struct {
	// Index is the panicking task's position in submission order (0-based).
	Index int

	// Value is the original panic value, identity preserved.
	Value any

	// Stack is the worker's stack trace at the point of recovery.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("concurrent task %d panicked: %v", e.Index, e.Value)
}

// AggregateError carries every task failure from one execution, in original
// submission order. Entries are the unwrapped task errors, with panics
// represented as *PanicError. It is returned by the eager policies when two
// or more tasks failed.
type AggregateError struct {
	// Failures holds one entry per failed task, ordered by submission index.
	Failures []error
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d concurrent tasks failed:", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n\t")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap returns the individual failures so errors.Is and errors.As can
// match against any entry in the list.
func (e *AggregateError) Unwrap() []error {
	return e.Failures
}
