package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/runner"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
				stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))))
	} else {
		var bySeverity []string
		if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
			bySeverity = append(bySeverity, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
		}
		if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
			bySeverity = append(bySeverity, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
		}
		if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
			bySeverity = append(bySeverity, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		total := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if len(bySeverity) > 0 {
			total += " (" + strings.Join(bySeverity, ", ") + ")"
		}
		parts = append(parts, total+fmt.Sprintf(" in %d %s",
			stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files")))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}
