package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gwtool/gwt/internal/db"
	"github.com/spf13/cobra"
)

const (
	workDir = ".gwt"
	dbPath  = ".gwt/gwt.db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gwt run history in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	_, err := os.Stat(workDir)
	dirExists := err == nil
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", workDir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", workDir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", workDir)
	}

	_, err = os.Stat(dbPath)
	dbExists := err == nil
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", dbPath)
	} else {
		fmt.Fprintf(w, "%s created\n", dbPath)
	}

	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore() ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(dbPath+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", dbPath + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == dbPath {
			return []string{dbPath + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += dbPath + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{dbPath + " added to .gitignore"}, nil
}
