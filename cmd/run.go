package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gwtool/gwt/internal/db"
	"github.com/gwtool/gwt/internal/feature"
	"github.com/gwtool/gwt/internal/logging"
	"github.com/gwtool/gwt/internal/run"
	"github.com/gwtool/gwt/internal/steps"
	"github.com/gwtool/gwt/internal/ui"
	"github.com/spf13/cobra"
)

// stepTable is the process-wide step registry. An embedding binary
// registers its handlers here before calling Execute.
var stepTable = steps.NewRegistry()

// Steps exposes the registry the run command executes against.
func Steps() *steps.Registry {
	return stepTable
}

// RunOptions carries the run command's flag values.
type RunOptions struct {
	Env         string
	DryRun      bool
	StepTimeout time.Duration
	Timeout     time.Duration
	NoSave      bool
	LogLevel    string
}

var runOpts RunOptions

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a feature file's scenarios",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRun(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], runOpts)
	},
}

func init() {
	runCmd.Flags().StringVar(&runOpts.Env, "env", "", "Active environment name for skip tags")
	runCmd.Flags().BoolVar(&runOpts.DryRun, "dry-run", false, "Resolve steps without executing handlers")
	runCmd.Flags().DurationVar(&runOpts.StepTimeout, "step-timeout", 0, "Per-step timeout (0 disables)")
	runCmd.Flags().DurationVar(&runOpts.Timeout, "timeout", 0, "Whole-run timeout (0 disables)")
	runCmd.Flags().BoolVar(&runOpts.NoSave, "no-save", false, "Do not record the run in history")
	runCmd.Flags().StringVar(&runOpts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
}

func RunRun(w, ew io.Writer, path string, opts RunOptions) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, perr := feature.Parse(path, content)
	if perr != nil {
		return fmt.Errorf("%s: %w", path, perr)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	runner := &run.Runner{
		Registry:    stepTable,
		Env:         opts.Env,
		StepTimeout: opts.StepTimeout,
		DryRun:      opts.DryRun,
		Logger:      logging.New(ew, logging.ParseLevel(opts.LogLevel)),
	}
	report := runner.Run(ctx, doc)

	for _, sc := range report.Scenarios {
		switch sc.State {
		case run.Passed:
			ui.PassLine(w, sc.Title)
		case run.Failed:
			ui.FailLine(w, sc.Title, sc.Error)
		case run.Skipped:
			ui.SkipLine(w, sc.Title, sc.Reason)
		}
	}
	passed, failed, skipped := report.Counts()
	ui.SummaryLine(w, passed, failed, skipped, report.Duration)

	if !opts.NoSave {
		if _, err := os.Stat(workDir); err == nil {
			if err := saveRun(report); err != nil {
				return err
			}
		}
	}

	if report.Failed() {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}

func saveRun(report *run.Report) error {
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	if _, err := db.SaveReport(sqlDB, report); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
