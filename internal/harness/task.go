package harness

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/roach88/stampede/concurrent"
)

// maxCapturedOutput bounds how much task output ends up in failure messages.
const maxCapturedOutput = 512

// TaskFailure is the error a command task returns when its process fails.
// It records the submission index so the report can attribute the failure,
// and keeps the process error as the cause.
type TaskFailure struct {
	// Index is the task's position in submission order (0-based).
	Index int

	// Command is the rendered argv.
	Command string

	// Output is the trailing combined output of the failed process.
	Output string

	// Err is the underlying process error.
	Err error
}

// Error implements the error interface.
func (e *TaskFailure) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("task %d (%s): %v: %s", e.Index, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("task %d (%s): %v", e.Index, e.Command, e.Err)
}

// Unwrap returns the process error.
func (e *TaskFailure) Unwrap() error {
	return e.Err
}

// commandTask builds an ActionTask that runs argv as a subprocess. A nonzero
// exit becomes a *TaskFailure carrying the task index and the tail of the
// combined output.
func commandTask(ctx context.Context, index int, argv []string) concurrent.ActionTask {
	return func() error {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			return &TaskFailure{
				Index:   index,
				Command: strings.Join(argv, " "),
				Output:  trimOutput(output),
				Err:     err,
			}
		}
		return nil
	}
}

// trimOutput normalizes and bounds process output for failure messages.
func trimOutput(output []byte) string {
	trimmed := bytes.TrimSpace(output)
	if len(trimmed) > maxCapturedOutput {
		trimmed = trimmed[len(trimmed)-maxCapturedOutput:]
	}
	return strings.ReplaceAll(string(trimmed), "\n", " | ")
}
