package concurrent

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentError_Message(t *testing.T) {
	err := &ArgumentError{Name: "threadCount", Value: 1, Reason: "must be at least 2"}
	assert.Equal(t, "invalid threadCount 1: must be at least 2", err.Error())
}

func TestIsArgumentError(t *testing.T) {
	err := &ArgumentError{Name: "count", Value: 0, Reason: "must be at least 1"}
	assert.True(t, IsArgumentError(err))
	assert.True(t, IsArgumentError(fmt.Errorf("configuring runner: %w", err)))
	assert.False(t, IsArgumentError(errors.New("unrelated")))
	assert.False(t, IsArgumentError(nil))
}

func TestTaskError_UnwrapsToCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TaskError{Index: 3, Err: cause}

	assert.Equal(t, "concurrent task 3 failed: connection reset", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestPanicError_Message(t *testing.T) {
	err := &PanicError{Index: 2, Value: "index out of range"}
	assert.Equal(t, "concurrent task 2 panicked: index out of range", err.Error())
}

func TestAggregateError_ListsEveryFailure(t *testing.T) {
	errA := errors.New("first")
	errB := errors.New("second")
	agg := &AggregateError{Failures: []error{errA, errB}}

	msg := agg.Error()
	assert.Contains(t, msg, "2 concurrent tasks failed")
	assert.Contains(t, msg, "first")
	assert.Contains(t, msg, "second")

	require.Len(t, agg.Unwrap(), 2)
	assert.ErrorIs(t, agg, errA)
	assert.ErrorIs(t, agg, errB)
}
