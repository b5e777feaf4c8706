package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gwtool/gwt/internal/feature"
	"github.com/gwtool/gwt/internal/tags"
	"github.com/gwtool/gwt/internal/ui"
	"github.com/spf13/cobra"
)

var listEnvFlag string

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List a feature file's scenarios and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), args[0], listEnvFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&listEnvFlag, "env", "", "Mark scenarios excluded in this environment")
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer, path, env string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, perr := feature.Parse(path, content)
	if perr != nil {
		return fmt.Errorf("%s: %w", path, perr)
	}

	fmt.Fprintf(w, "Feature: %s\n", doc.Name)
	for _, sc := range doc.Scenarios {
		reason := ""
		if enabled, r := tags.Disposition(sc.Tags, env); !enabled {
			reason = r
		}
		ui.ListRow(w, sc.Title, sc.Tags, reason)
	}
	return nil
}
