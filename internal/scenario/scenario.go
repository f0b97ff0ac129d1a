// Package scenario loads and validates stress scenario definitions.
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: checkout_burst
//	description: "Hammer the checkout script with 100 concurrent runs"
//	count: 100
//	threads: 8
//	command: ["./scripts/checkout.sh"]
//	expect:
//	  max_failures: 0
//
// A scenario runs either one command repeated count times, or a
// heterogeneous list of distinct tasks once each:
//
//	name: mixed_workload
//	tasks:
//	  - command: ["./scripts/read.sh"]
//	  - command: ["./scripts/write.sh"]
//
// Structural validation happens against an embedded CUE schema before any
// semantic checks, so malformed files fail with positioned constraint errors
// rather than surprises at execution time.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one stress run: what to execute, how many times, and how
// many workers may run it concurrently.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Count is the number of repetitions of Command. Defaults to 1.
	// Ignored when Tasks is set (each task runs exactly once).
	Count int `yaml:"count,omitempty" json:"count,omitempty"`

	// Threads bounds the worker pool. Zero means unbounded (one worker per
	// task); an explicit value must be at least 2.
	Threads int `yaml:"threads,omitempty" json:"threads,omitempty"`

	// Command is the argv to repeat Count times. Mutually exclusive with
	// Tasks.
	Command []string `yaml:"command,omitempty" json:"command,omitempty"`

	// Tasks is an ordered list of distinct tasks, each run once. Mutually
	// exclusive with Command.
	Tasks []TaskSpec `yaml:"tasks,omitempty" json:"tasks,omitempty"`

	// Expect declares the pass criteria. A nil Expect means zero failures.
	Expect *ExpectClause `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// TaskSpec describes one distinct task in a heterogeneous scenario.
type TaskSpec struct {
	// Command is the argv to execute.
	Command []string `yaml:"command" json:"command"`
}

// ExpectClause declares when a run counts as passed.
type ExpectClause struct {
	// MaxFailures is the largest number of failing tasks the scenario
	// tolerates. Defaults to 0.
	MaxFailures int `yaml:"max_failures" json:"max_failures"`
}

// TaskCount returns the number of tasks this scenario will submit.
func (s *Scenario) TaskCount() int {
	if len(s.Tasks) > 0 {
		return len(s.Tasks)
	}
	return s.Count
}

// MaxFailures returns the declared failure tolerance, defaulting to 0.
func (s *Scenario) MaxFailures() int {
	if s.Expect == nil {
		return 0
	}
	return s.Expect.MaxFailures
}

// Load reads, parses, and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	applyDefaults(&sc)

	if err := ValidateSchema(&sc); err != nil {
		return nil, err
	}
	if err := validateSemantics(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// applyDefaults fills in values the schema treats as optional.
func applyDefaults(sc *Scenario) {
	if sc.Count == 0 && len(sc.Tasks) == 0 {
		sc.Count = 1
	}
}

// validateSemantics enforces the cross-field rules the CUE schema cannot
// express field-locally.
func validateSemantics(sc *Scenario) error {
	hasCommand := len(sc.Command) > 0
	hasTasks := len(sc.Tasks) > 0

	switch {
	case hasCommand && hasTasks:
		return &ValidationError{Field: "command", Message: "command and tasks are mutually exclusive"}
	case !hasCommand && !hasTasks:
		return &ValidationError{Field: "command", Message: "either command or tasks is required"}
	}

	for i, task := range sc.Tasks {
		if len(task.Command) == 0 {
			return &ValidationError{Field: fmt.Sprintf("tasks[%d].command", i), Message: "must not be empty"}
		}
	}
	return nil
}

// ValidationError reports a scenario constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("scenario.%s: %s", e.Field, e.Message)
}
