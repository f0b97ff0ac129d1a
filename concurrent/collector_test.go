package concurrent

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_ToSlicePreservesOrder(t *testing.T) {
	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 2, nil },
		func() (int, error) { return 3, nil },
	)

	values, err := Collect(results, ToSlice[int]())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestCollect_Counting(t *testing.T) {
	results := execute(t,
		func() (int, error) { return 10, nil },
		func() (int, error) { return 20, nil },
	)

	count, err := Collect(results, Counting[int]())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollect_Joining(t *testing.T) {
	results := execute(t,
		func() (string, error) { return "a", nil },
		func() (string, error) { return "b", nil },
		func() (string, error) { return "c", nil },
	)

	joined, err := Collect(results, Joining(", "))
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", joined)
}

func TestCollect_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var accumulated []int

	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, boom },
		func() (int, error) { return 3, nil },
	)

	_, err := Collect(results, Collector[int, []int, []int]{
		Supply:     func() []int { return nil },
		Accumulate: func(acc []int, v int) []int { accumulated = append(accumulated, v); return append(acc, v) },
		Finish:     func(acc []int) []int { return acc },
	})

	var te *TaskError
	require.ErrorAs(t, err, &te)
	assert.Same(t, boom, te.Err)
	assert.Equal(t, []int{1}, accumulated, "downstream must not see values past the failure")
}

func TestCollect_RepanicsOnFatalFailure(t *testing.T) {
	sentinel := fmt.Errorf("fatal")
	results := execute(t,
		func() (int, error) { panic(sentinel) },
	)

	defer func() {
		assert.Same(t, sentinel, recover())
	}()
	_, _ = Collect(results, Counting[int]())
	t.Fatal("unreachable: Collect must have panicked")
}

func TestParallelCollect_MatchesSequentialResult(t *testing.T) {
	const n = 100
	tasks := make([]ValueTask[int], n)
	for i := range n {
		tasks[i] = func() (int, error) { return i, nil }
	}
	results := execute(t, tasks...)

	sequential, err := Collect(results, ToSlice[int]())
	require.NoError(t, err)

	parallel, err := ParallelCollect(results, ToSlice[int](), 4)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel, "partitioned merge must preserve order")
}

func TestParallelCollect_EarliestFailureWins(t *testing.T) {
	early := errors.New("early")
	late := errors.New("late")

	tasks := make([]ValueTask[int], 40)
	for i := range 40 {
		tasks[i] = func() (int, error) { return i, nil }
	}
	tasks[5] = func() (int, error) { return 0, early }
	tasks[35] = func() (int, error) { return 0, late }

	results := execute(t, tasks...)

	_, err := ParallelCollect(results, Counting[int](), 4)
	var te *TaskError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 5, te.Index)
	assert.Same(t, early, te.Err, "merge must surface the lowest-index failure")
}

func TestParallelCollect_RepanicsOnFatalFailure(t *testing.T) {
	sentinel := "fatal"
	tasks := make([]ValueTask[int], 20)
	for i := range 20 {
		tasks[i] = func() (int, error) { return i, nil }
	}
	tasks[7] = func() (int, error) { panic(sentinel) }

	results := execute(t, tasks...)

	defer func() {
		assert.Equal(t, sentinel, recover())
	}()
	_, _ = ParallelCollect(results, Counting[int](), 4)
	t.Fatal("unreachable: ParallelCollect must have panicked")
}

func TestParallelCollect_DegradesToSequential(t *testing.T) {
	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 2, nil },
	)

	// More partitions than outcomes: sequential path, Merge may be nil.
	values, err := ParallelCollect(results, Collector[int, []int, []int]{
		Supply:     func() []int { return nil },
		Accumulate: func(acc []int, v int) []int { return append(acc, v) },
		Finish:     func(acc []int) []int { return acc },
	}, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)
}
