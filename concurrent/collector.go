package concurrent

import (
	"strings"
	"sync"
)

// Collector describes a custom reduction over success values: Supply creates
// an empty accumulation, Accumulate folds one value in, Merge combines two
// partition accumulations, and Finish converts the final accumulation into
// the result type. Merge may be nil for purely sequential use.
type Collector[T, A, R any] struct {
	Supply     func() A
	Accumulate func(A, T) A
	Merge      func(A, A) A
	Finish     func(A) R
}

// Collect reduces the results sequentially in submission order. Encountering
// a failure aborts the reduction with stop-at-first-seen semantics, mirroring
// Stream: a panic is re-panicked identity-preserved, an error is returned
// wrapped in a *TaskError. Methods cannot carry type parameters, hence the
// free function.
func Collect[T, A, R any](results *Results[T], c Collector[T, A, R]) (R, error) {
	acc := c.Supply()
	for i := range results.outcomes {
		o := &results.outcomes[i]
		if o.panicked {
			panic(o.panicVal)
		}
		if o.err != nil {
			var zero R
			return zero, &TaskError{Index: o.index, Err: o.err}
		}
		acc = c.Accumulate(acc, o.value)
	}
	return c.Finish(acc), nil
}

// ParallelCollect reduces the results with up to partitions goroutines, each
// scanning a disjoint contiguous slice of outcomes, then merging the partial
// accumulations in order. Failure stops everything: the failure with the
// lowest submission index wins, surfaced exactly as Collect would surface it.
// The collector's Merge must be set and associative over adjacent partitions.
//
// With partitions < 2, or fewer outcomes than partitions, this degrades to
// the sequential Collect.
func ParallelCollect[T, A, R any](results *Results[T], c Collector[T, A, R], partitions int) (R, error) {
	n := len(results.outcomes)
	if partitions < 2 || n <= partitions {
		return Collect(results, c)
	}

	type partial struct {
		acc     A
		failed  *outcome[T]
		scanned bool
	}
	partials := make([]partial, partitions)

	chunk := (n + partitions - 1) / partitions

	var wg sync.WaitGroup
	for p := range partitions {
		lo := p * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc := c.Supply()
			for i := lo; i < hi; i++ {
				o := &results.outcomes[i]
				if o.failed() {
					// Abort this partition. Panics must not escape on
					// a collector goroutine; the caller re-raises.
					partials[p] = partial{failed: o, scanned: true}
					return
				}
				acc = c.Accumulate(acc, o.value)
			}
			partials[p] = partial{acc: acc, scanned: true}
		}()
	}
	wg.Wait()

	// Earliest failing partition decides the surfaced failure, matching the
	// ordered semantics of the sequential scan.
	for _, part := range partials {
		if part.failed == nil {
			continue
		}
		if part.failed.panicked {
			panic(part.failed.panicVal)
		}
		var zero R
		return zero, &TaskError{Index: part.failed.index, Err: part.failed.err}
	}

	merged := c.Supply()
	for _, part := range partials {
		if part.scanned {
			merged = c.Merge(merged, part.acc)
		}
	}
	return c.Finish(merged), nil
}

// ToSlice collects success values into a submission-ordered slice.
func ToSlice[T any]() Collector[T, []T, []T] {
	return Collector[T, []T, []T]{
		Supply:     func() []T { return nil },
		Accumulate: func(acc []T, v T) []T { return append(acc, v) },
		Merge:      func(a, b []T) []T { return append(a, b...) },
		Finish:     func(acc []T) []T { return acc },
	}
}

// Counting collects the number of successful values.
func Counting[T any]() Collector[T, int, int] {
	return Collector[T, int, int]{
		Supply:     func() int { return 0 },
		Accumulate: func(acc int, _ T) int { return acc + 1 },
		Merge:      func(a, b int) int { return a + b },
		Finish:     func(acc int) int { return acc },
	}
}

// Joining collects string values into one string separated by sep.
func Joining(sep string) Collector[string, []string, string] {
	return Collector[string, []string, string]{
		Supply:     func() []string { return nil },
		Accumulate: func(acc []string, v string) []string { return append(acc, v) },
		Merge:      func(a, b []string) []string { return append(a, b...) },
		Finish:     func(acc []string) string { return strings.Join(acc, sep) },
	}
}
