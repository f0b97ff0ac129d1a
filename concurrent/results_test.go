package concurrent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stampede/internal/testutil"
)

// execute runs the given tasks and fails the test on harness-level errors.
func execute[T any](t *testing.T, tasks ...ValueTask[T]) *Results[T] {
	t.Helper()
	require.NotEmpty(t, tasks)
	r := Running(tasks[0])
	for _, task := range tasks[1:] {
		r.ConcurrentlyWith(task)
	}
	results, err := r.Execute(context.Background())
	require.NoError(t, err)
	return results
}

func TestStream_YieldsValuesInSubmissionOrder(t *testing.T) {
	// Second task finishes first; the stream must still yield 1 then 2.
	gate := testutil.NewGate()
	results := execute(t,
		func() (int, error) { gate.Wait(); return 1, nil },
		func() (int, error) { defer gate.Open(); return 2, nil },
	)

	var values []int
	for v, err := range results.Stream() {
		require.NoError(t, err)
		values = append(values, v)
	}
	assert.Equal(t, []int{1, 2}, values)
}

func TestStream_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, boom },
		func() (int, error) { return 3, nil },
	)

	var values []int
	var failure error
	for v, err := range results.Stream() {
		if err != nil {
			failure = err
			continue
		}
		values = append(values, v)
	}

	assert.Equal(t, []int{1}, values, "elements after the failure must not be yielded")
	var te *TaskError
	require.ErrorAs(t, failure, &te)
	assert.Equal(t, 1, te.Index)
	assert.Same(t, boom, te.Err)
}

func TestStream_RepanicsWithOriginalPanicValue(t *testing.T) {
	sentinel := &struct{ msg string }{"fatal"}
	results := execute(t,
		func() (int, error) { panic(sentinel) },
		func() (int, error) { return 2, nil },
	)

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered, "consuming the stream must re-panic")
		assert.Same(t, sentinel, recovered, "panic identity must be preserved, never wrapped")
	}()

	for range results.Stream() {
	}
	t.Fatal("unreachable: stream must have panicked")
}

func TestValues_AllSuccesses(t *testing.T) {
	results := execute(t,
		func() (string, error) { return "a", nil },
		func() (string, error) { return "b", nil },
		func() (string, error) { return "c", nil },
	)

	values, err := results.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestValues_SoleErrorIsWrappedWithCause(t *testing.T) {
	boom := errors.New("boom")
	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, boom },
		func() (int, error) { return 3, nil },
	)

	values, err := results.Values()
	assert.Nil(t, values, "no partial value list on failure")

	var te *TaskError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Index)
	assert.Same(t, boom, te.Err)
	assert.ErrorIs(t, err, boom)
}

func TestValues_SolePanicRepanicsUnwrapped(t *testing.T) {
	sentinel := errors.New("programming error")
	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { panic(sentinel) },
	)

	defer func() {
		assert.Same(t, sentinel, recover())
	}()
	_, _ = results.Values()
	t.Fatal("unreachable: Values must have panicked")
}

func TestValues_MultipleFailuresAggregateInOrder(t *testing.T) {
	errA := errors.New("first")
	errB := errors.New("second")
	panicVal := "third, fatally"

	results := execute(t,
		func() (int, error) { return 0, errA },
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, errB },
		func() (int, error) { panic(panicVal) },
	)

	_, err := results.Values()
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Failures, 3)

	// Sub-failures keep their original identity in submission order; only
	// panics get a carrier type.
	assert.Same(t, errA, agg.Failures[0])
	assert.Same(t, errB, agg.Failures[1])
	var pe *PanicError
	require.ErrorAs(t, agg.Failures[2], &pe)
	assert.Equal(t, 3, pe.Index)
	assert.Equal(t, panicVal, pe.Value)
	assert.NotEmpty(t, pe.Stack)

	// errors.Is still finds the originals through the aggregate.
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestAssertNoFailures_MatchesValuesAggregation(t *testing.T) {
	errA := errors.New("first")
	errB := errors.New("second")

	clean := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 2, nil },
	)
	assert.NoError(t, clean.AssertNoFailures())

	dirty := execute(t,
		func() (int, error) { return 0, errA },
		func() (int, error) { return 0, errB },
	)
	err := dirty.AssertNoFailures()
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []error{errA, errB}, agg.Failures)
}

func TestPolicies_AreIdempotent(t *testing.T) {
	boom := errors.New("boom")
	results := execute(t,
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, boom },
	)

	first := results.AssertNoFailures()
	second := results.AssertNoFailures()

	var te1, te2 *TaskError
	require.ErrorAs(t, first, &te1)
	require.ErrorAs(t, second, &te2)
	assert.Same(t, te1.Err, te2.Err, "reprocessing the immutable sequence yields the same failure")
}
