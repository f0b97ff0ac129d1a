package concurrent

// ValueTask is a unit of work that produces a value. It is invoked with no
// arguments, may return an error (recoverable failure), and may panic (fatal
// failure). Each invocation must be independent: the harness calls the same
// ValueTask from multiple goroutines when it is repeated.
type ValueTask[T any] func() (T, error)

// ActionTask is a unit of work invoked purely for its side effects. The same
// failure rules as ValueTask apply.
type ActionTask func() error

// asValueTask adapts a side-effect task to the value-producing shape so the
// scheduling engine only ever deals with one task form.
func asValueTask(task ActionTask) ValueTask[struct{}] {
	return func() (struct{}, error) {
		return struct{}{}, task()
	}
}
