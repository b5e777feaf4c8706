package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skipStyle   = lipgloss.NewStyle().Faint(true)
	detailStyle = lipgloss.NewStyle().Faint(true)
)

func PassLine(w io.Writer, title string) {
	fmt.Fprintln(w, passStyle.Render("pass")+"  "+title)
}

func FailLine(w io.Writer, title, detail string) {
	fmt.Fprintln(w, failStyle.Render("fail")+"  "+title)
	if detail != "" {
		fmt.Fprintln(w, detailStyle.Render("      "+detail))
	}
}

func SkipLine(w io.Writer, title, reason string) {
	line := skipStyle.Render("skip") + "  " + title
	if reason != "" {
		line += skipStyle.Render("  (" + reason + ")")
	}
	fmt.Fprintln(w, line)
}

func ListRow(w io.Writer, title string, tagNames []string, skipReason string) {
	line := "  " + title
	if len(tagNames) > 0 {
		line += "  " + skipStyle.Render("@"+strings.Join(tagNames, " @"))
	}
	if skipReason != "" {
		line += "  " + skipStyle.Render("(skip: "+skipReason+")")
	}
	fmt.Fprintln(w, line)
}

func SummaryLine(w io.Writer, passed, failed, skipped int, elapsed time.Duration) {
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped in %s\n", passed, failed, skipped, elapsed.Round(time.Millisecond))
}

func CheckLine(w io.Writer, path string, scenarios, steps int) {
	fmt.Fprintf(w, "%s  %s (%d scenarios, %d steps)\n", passStyle.Render("ok"), path, scenarios, steps)
}

func HistoryRow(w io.Writer, id int64, feature, env string, passed, failed, skipped int, startedAt time.Time) {
	marker := passStyle.Render("pass")
	if failed > 0 {
		marker = failStyle.Render("fail")
	}
	envLabel := env
	if envLabel == "" {
		envLabel = "-"
	}
	fmt.Fprintf(w, "%-4d %s  %s  %-10s %s  %d/%d/%d\n",
		id, marker, startedAt.Format("2006-01-02 15:04"), envLabel, feature, passed, failed, skipped)
}
