package testutil

// FixedRunID returns the same run identifier every time.
//
// This enables deterministic harness execution and golden snapshot
// comparison: the same scenario with the same FixedRunID produces
// byte-identical reports.
//
// Thread-safety: FixedRunID is stateless and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a fixed run ID generator.
//
// If id is empty, Generate returns "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
//
// Implements harness.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
