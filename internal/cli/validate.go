package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/stampede/internal/scenario"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Scenario string `json:"scenario,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario file without running it",
		Long: `Validate a scenario file against the schema and semantic rules
without executing any tasks. Faster than run for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sc, err := scenario.Load(path)
	if err != nil {
		if formatter.Format == "json" {
			result := ValidationResult{Valid: false, Error: err.Error()}
			if jsonErr := formatter.JSON(result); jsonErr != nil {
				return WrapExitError(ExitCommandError, "failed to render result", jsonErr)
			}
			return exitForValidation(err)
		}
		formatter.Textf("invalid: %v", err)
		return exitForValidation(err)
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(ValidationResult{Valid: true, Scenario: sc.Name}); err != nil {
			return WrapExitError(ExitCommandError, "failed to render result", err)
		}
		return nil
	}
	formatter.Textf("valid: scenario %q (%d tasks)", sc.Name, sc.TaskCount())
	return nil
}

// exitForValidation distinguishes scenario constraint violations (failure)
// from file system problems (command error).
func exitForValidation(err error) error {
	var ve *scenario.ValidationError
	if errors.As(err, &ve) {
		return WrapExitError(ExitFailure, "scenario is invalid", err)
	}
	return WrapExitError(ExitCommandError, "failed to load scenario", err)
}
