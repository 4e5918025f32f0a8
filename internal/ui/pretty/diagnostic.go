package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

const ellipsis = "…"

// DiagnosticFormat controls how FormatDiagnostic renders one diagnostic.
type DiagnosticFormat struct {
	// RuleFormat selects the rule identifier shown in parentheses.
	RuleFormat config.RuleFormat

	// SourceLine is the offending line; empty disables source context.
	SourceLine string

	// Width clips the source context to this many columns; 0 means unlimited.
	Width int
}

// FormatDiagnostic formats a single diagnostic for terminal output:
//
//	path:line:col  severity  message  (rule)
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, format DiagnosticFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(format.RuleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if format.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(format.SourceLine, diag.StartColumn, format.Width))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column
// (a 1-based byte column). When width is positive the line is clipped to fit,
// keeping the caret visible.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	caret := 0
	if column > 0 {
		caret = utf8.RuneCountInString(line[:min(column-1, len(line))]) + 1
	}

	available := 0
	if width > 0 {
		available = max(width-len(contextIndent), 1)
	}
	line, caret = clipLine(line, caret, available)

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if caret > 0 {
		builder.WriteString(contextIndent + strings.Repeat(" ", caret-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// clipLine cuts line to at most width runes around the 1-based rune column
// caret, marking cut ends with an ellipsis. It returns the clipped line and
// the caret column within it. A width of 0 disables clipping.
func clipLine(line string, caret, width int) (string, int) {
	runes := []rune(line)
	if width <= 0 || len(runes) <= width {
		return line, caret
	}

	// Leave room for an ellipsis on each side.
	window := max(width-2, 1)

	start := 0
	if caret > window {
		start = caret - window/2 - 1
	}
	end := min(start+window, len(runes))

	var builder strings.Builder
	if start > 0 {
		builder.WriteString(ellipsis)
	}
	builder.WriteString(string(runes[start:end]))
	if end < len(runes) {
		builder.WriteString(ellipsis)
	}

	if caret > 0 {
		caret -= start
		if start > 0 {
			caret++
		}
	}
	return builder.String(), caret
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount == 1 {
		header += s.Dim.Render(" (1 issue)")
	} else if issueCount > 1 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
