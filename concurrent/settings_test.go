package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettings_ValidCount(t *testing.T) {
	s, err := NewSettings(5)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Count())
	assert.True(t, s.Unbounded())
	assert.Equal(t, 0, s.ThreadCount())
}

func TestNewSettings_RejectsNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		_, err := NewSettings(count)
		require.Error(t, err, "count=%d", count)
		assert.True(t, IsArgumentError(err))
	}
}

func TestSettings_WithThreadCount(t *testing.T) {
	s, err := NewSettings(10)
	require.NoError(t, err)

	bounded, err := s.WithThreadCount(4)
	require.NoError(t, err)
	assert.Equal(t, 4, bounded.ThreadCount())
	assert.False(t, bounded.Unbounded())
	assert.Equal(t, 10, bounded.Count())
}

func TestSettings_WithThreadCountRejectsBelowTwo(t *testing.T) {
	s, err := NewSettings(10)
	require.NoError(t, err)

	for _, threads := range []int{1, 0, -1} {
		_, err := s.WithThreadCount(threads)
		require.Error(t, err, "threads=%d", threads)
		assert.True(t, IsArgumentError(err))
	}
}

func TestSettings_WithThreadCountDoesNotMutateOriginal(t *testing.T) {
	s, err := NewSettings(3)
	require.NoError(t, err)

	_, err = s.WithThreadCount(8)
	require.NoError(t, err)

	assert.True(t, s.Unbounded(), "original settings must stay unbounded")
}
