package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gwtool/gwt/internal/feature"
	"github.com/gwtool/gwt/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse feature files and report structural errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, paths []string) error {
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc, perr := feature.Parse(path, content)
		if perr != nil {
			return fmt.Errorf("%s: %w", path, perr)
		}

		stepCount := 0
		for _, sc := range doc.Scenarios {
			stepCount += len(sc.Steps)
		}
		ui.CheckLine(w, path, len(doc.Scenarios), stepCount)
	}
	return nil
}
