package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stampede/internal/harness"
	"github.com/roach88/stampede/internal/store"
)

func TestHistory_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := executeCommand(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no recorded runs")
}

func TestHistory_ListsRecordedRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.WriteReport(context.Background(), &harness.Report{
		RunID:     "run-1",
		Scenario:  "checkout_burst",
		TaskCount: 50,
		StartedAt: time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
		Duration:  2 * time.Second,
		Passed:    true,
	}))
	require.NoError(t, st.Close())

	out, err := executeCommand(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "checkout_burst")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "run-1")
}

func TestHistory_RequiresDatabaseFlag(t *testing.T) {
	_, err := executeCommand(t, "history")
	require.Error(t, err)
}
