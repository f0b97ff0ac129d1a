package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/stampede/internal/scenario"
)

// RunWithGolden executes a scenario and compares the report snapshot against
// a golden file at testdata/{scenario.Name}.golden.
//
// Use a fixed run ID generator for the harness, otherwise the snapshot can
// never match. To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, h *Harness, sc *scenario.Scenario) (*Report, error) {
	t.Helper()

	report, err := h.Run(context.Background(), sc)
	if err != nil {
		return nil, err
	}

	data, err := report.Snapshot()
	if err != nil {
		return nil, err
	}

	g := goldie.New(t)
	g.Assert(t, sc.Name, data)
	return report, nil
}
