package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gwtool/gwt/internal/db"
	"github.com/gwtool/gwt/internal/ui"
	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history [<run-id>]",
	Short: "Show recent runs, or one run's scenario results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RunHistory(cmd.OutOrStdout(), historyLimitFlag)
		}
		return RunHistoryShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func RunHistory(w io.Writer, limit int) error {
	if _, err := os.Stat(workDir); os.IsNotExist(err) {
		return fmt.Errorf("run `gwt init` first")
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	runs, err := db.RecentRuns(sqlDB, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no recorded runs")
		return nil
	}

	for _, r := range runs {
		ui.HistoryRow(w, r.ID, r.Feature, r.Env, r.Passed, r.Failed, r.Skipped, r.StartedAt)
	}
	return nil
}

func RunHistoryShow(w io.Writer, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID: %s", rawID)
	}

	if _, err := os.Stat(workDir); os.IsNotExist(err) {
		return fmt.Errorf("run `gwt init` first")
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	results, err := db.RunResults(sqlDB, id)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch r.State {
		case "passed":
			ui.PassLine(w, r.Title)
		case "failed":
			ui.FailLine(w, r.Title, r.Detail)
		case "skipped":
			ui.SkipLine(w, r.Title, r.Reason)
		default:
			fmt.Fprintf(w, "%s  %s\n", r.State, r.Title)
		}
	}
	return nil
}
