package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/stampede/internal/harness"
	"github.com/roach88/stampede/internal/scenario"
	"github.com/roach88/stampede/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Threads  int

	// RunIDs allows overriding run ID generation (for testing).
	// If nil, defaults to harness.UUIDRunID.
	RunIDs harness.RunIDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Execute a stress scenario",
		Long: `Execute a stress scenario and report aggregated outcomes.

The scenario's tasks all run to completion regardless of individual failures;
the command exits 1 when the failure count exceeds the scenario's tolerance.

Example:
  stampede run scenarios/checkout.yaml
  stampede run scenarios/checkout.yaml --threads 4 --db ./history.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite history database")
	cmd.Flags().IntVar(&opts.Threads, "threads", 0, "override the scenario's worker bound (minimum 2)")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sc, err := scenario.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	if opts.Threads > 0 {
		if opts.Threads < 2 {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid --threads %d: must be at least 2", opts.Threads))
		}
		sc.Threads = opts.Threads
	}
	formatter.VerboseLog("loaded scenario %q (%d tasks)", sc.Name, sc.TaskCount())

	harnessOpts := []harness.Option{harness.WithLogger(logger)}
	if opts.RunIDs != nil {
		harnessOpts = append(harnessOpts, harness.WithRunIDGenerator(opts.RunIDs))
	}

	report, err := harness.New(harnessOpts...).Run(cmd.Context(), sc)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to execute scenario", err)
	}

	if opts.Database != "" {
		if err := recordRun(cmd, opts.Database, report); err != nil {
			return err
		}
		formatter.VerboseLog("recorded run %s in %s", report.RunID, opts.Database)
	}

	if err := renderReport(formatter, report); err != nil {
		return WrapExitError(ExitCommandError, "failed to render report", err)
	}

	if !report.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %q failed: %d of %d tasks failed", sc.Name, report.FailureCount, report.TaskCount))
	}
	return nil
}

func recordRun(cmd *cobra.Command, dbPath string, report *harness.Report) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	if err := st.WriteReport(cmd.Context(), report); err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	return nil
}

func renderReport(f *OutputFormatter, report *harness.Report) error {
	if f.Format == "json" {
		return f.JSON(report)
	}

	status := "PASS"
	if !report.Passed {
		status = "FAIL"
	}
	f.Textf("%s  %s", status, report.Scenario)
	f.Textf("  run:      %s", report.RunID)
	f.Textf("  tasks:    %d (threads: %s)", report.TaskCount, threadLabel(report.ThreadCount))
	f.Textf("  duration: %s", report.Duration)
	f.Textf("  failures: %d", report.FailureCount)
	for _, failure := range report.Failures {
		f.Textf("    [%d] %s", failure.Index, failure.Message)
	}
	return nil
}

func threadLabel(threads int) string {
	if threads == 0 {
		return "unbounded"
	}
	return fmt.Sprintf("%d", threads)
}
