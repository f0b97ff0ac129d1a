package concurrent

import "iter"

// Results is the ordered, immutable outcome sequence of one Execute call.
// Its length equals the number of submitted tasks and its order is submission
// order, regardless of completion order.
//
// Each consumption policy reprocesses the same backing sequence, so calling a
// policy twice is safe (idempotent) though rarely meaningful.
type Results[T any] struct {
	outcomes []outcome[T]
}

// Len returns the number of outcomes, which equals the number of submitted
// tasks even when some of them failed.
func (r *Results[T]) Len() int {
	return len(r.outcomes)
}

// Stream returns a lazy, ordered, single-pass sequence of success values.
// Consuming element i yields its value, or - upon the first failing element
// encountered - terminates the sequence: a captured panic is re-panicked with
// its original value, and a task error is yielded once as a *TaskError. Later
// elements are not visited; Stream never aggregates multiple failures.
func (r *Results[T]) Stream() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := range r.outcomes {
			o := &r.outcomes[i]
			if o.panicked {
				panic(o.panicVal)
			}
			if o.err != nil {
				var zero T
				yield(zero, &TaskError{Index: o.index, Err: o.err})
				return
			}
			if !yield(o.value, nil) {
				return
			}
		}
	}
}

// Values materializes every success value into a submission-ordered slice,
// but only when zero tasks failed. With exactly one failure it surfaces that
// failure alone (panic re-panicked identity-preserved, error wrapped in a
// *TaskError); with two or more it returns an *AggregateError carrying the
// complete ordered failure list and no partial value slice.
func (r *Results[T]) Values() ([]T, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}
	values := make([]T, len(r.outcomes))
	for i := range r.outcomes {
		values[i] = r.outcomes[i].value
	}
	return values, nil
}

// AssertNoFailures applies the same failure aggregation as Values but
// discards success values entirely. Intended for ActionTask executions.
func (r *Results[T]) AssertNoFailures() error {
	return r.failure()
}

// failure implements the shared eager aggregation rule. It re-panics when the
// sole failure is a panic; otherwise it returns nil, the wrapped sole error,
// or the ordered aggregate.
func (r *Results[T]) failure() error {
	var failing []*outcome[T]
	for i := range r.outcomes {
		if r.outcomes[i].failed() {
			failing = append(failing, &r.outcomes[i])
		}
	}

	switch len(failing) {
	case 0:
		return nil
	case 1:
		o := failing[0]
		if o.panicked {
			panic(o.panicVal)
		}
		return &TaskError{Index: o.index, Err: o.err}
	default:
		failures := make([]error, len(failing))
		for i, o := range failing {
			if o.panicked {
				failures[i] = &PanicError{Index: o.index, Value: o.panicVal, Stack: o.stack}
			} else {
				failures[i] = o.err
			}
		}
		return &AggregateError{Failures: failures}
	}
}
