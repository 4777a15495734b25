package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/subtag/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 lines edited in 2 files (3 files checked), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	var msg string

	switch {
	case stats.LinesEdited == 0:
		msg = s.Success.Render("No changes")
	case dryRun:
		msg = s.Warning.Render(fmt.Sprintf("%d %s would be edited", stats.LinesEdited, plural(stats.LinesEdited, "line", "lines")))
	default:
		msg = s.Success.Render(fmt.Sprintf("%d %s edited in %d %s",
			stats.LinesEdited, plural(stats.LinesEdited, "line", "lines"),
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles)))
	}

	msg += s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	if stats.FilesSkipped > 0 {
		msg += ", " + s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		msg += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as an aligned table.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(s.Dim.Render(strings.Repeat("─", summaryDividerWidth)))
	b.WriteString("\n")

	rows := []struct {
		label string
		value int
		style func(...string) string
	}{
		{"Files discovered", stats.FilesDiscovered, s.Bold.Render},
		{"Files processed", stats.FilesProcessed, s.Bold.Render},
		{"Files modified", stats.FilesModified, s.Success.Render},
		{"Files skipped", stats.FilesSkipped, s.Warning.Render},
		{"Files failed", stats.FilesErrored, s.Failure.Render},
		{"Lines edited", stats.LinesEdited, s.Success.Render},
	}

	for _, row := range rows {
		value := strconv.Itoa(row.value)
		if row.value > 0 {
			value = row.style(value)
		}
		fmt.Fprintf(&b, "  %-18s %s\n", row.label+":", value)
	}

	return b.String()
}
