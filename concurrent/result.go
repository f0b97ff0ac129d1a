package concurrent

import "runtime/debug"

// outcome is the captured result of one task invocation: exactly one of a
// value, an error, or a panic. Created once by the worker that ran the task
// and immutable afterwards.
type outcome[T any] struct {
	index    int
	value    T
	err      error
	panicked bool
	panicVal any
	stack    []byte
}

// failed reports whether the task produced anything other than a value.
func (o *outcome[T]) failed() bool {
	return o.err != nil || o.panicked
}

// runTask invokes one task and captures its outcome. Panics are recovered
// here, on the worker, with the original panic value and the worker's stack;
// they must never escape into the pool machinery.
func runTask[T any](index int, task ValueTask[T]) (out outcome[T]) {
	defer func() {
		if p := recover(); p != nil {
			out = outcome[T]{
				index:    index,
				panicked: true,
				panicVal: p,
				stack:    debug.Stack(),
			}
		}
	}()

	value, err := task()
	if err != nil {
		return outcome[T]{index: index, err: err}
	}
	return outcome[T]{index: index, value: value}
}
