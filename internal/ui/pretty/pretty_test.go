package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headcheck/internal/ui/pretty"
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
	"github.com/yaklabco/headcheck/pkg/runner"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)
	assert.Equal(t, "text", styles.Error.Render("text"))
	assert.Equal(t, "text", styles.Bold.Render("text"))
}

//nolint:paralleltest // t.Setenv is incompatible with t.Parallel.
func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "buffers are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf))
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
}

func TestTerminalWidth_NotTerminal(t *testing.T) {
	t.Parallel()

	assert.Zero(t, pretty.TerminalWidth(&bytes.Buffer{}))
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := &lint.Diagnostic{
		RuleID:      "HC001",
		RuleName:    "no-multiple-toplevel-headings",
		Message:     "Don't use multiple top level headings (3:1)",
		Severity:    config.SeverityWarning,
		FilePath:    "doc.md",
		StartLine:   3,
		StartColumn: 1,
	}

	tests := []struct {
		name   string
		format pretty.DiagnosticFormat
		want   string
	}{
		{
			name:   "name format",
			format: pretty.DiagnosticFormat{RuleFormat: config.RuleFormatName},
			want:   "  doc.md:3:1  warning  Don't use multiple top level headings (3:1)  (no-multiple-toplevel-headings)\n",
		},
		{
			name:   "combined format with context",
			format: pretty.DiagnosticFormat{RuleFormat: config.RuleFormatCombined, SourceLine: "# Again"},
			want: "  doc.md:3:1  warning  Don't use multiple top level headings (3:1)  (HC001/no-multiple-toplevel-headings)\n" +
				"        # Again\n" +
				"        ^\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatDiagnostic(diag, tt.format))
		})
	}
}

func TestFormatDiagnostic_Suggestion(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := &lint.Diagnostic{RuleID: "HC001", Message: "m", Suggestion: "demote it"}

	out := styles.FormatDiagnostic(diag, pretty.DiagnosticFormat{RuleFormat: config.RuleFormatID})
	assert.Contains(t, out, "Suggestion: demote it")
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		width  int
		want   []string
	}{
		{
			name:   "unclipped",
			line:   "> # Title",
			column: 3,
			want:   []string{"> # Title", "  ^"},
		},
		{
			name:   "multibyte prefix",
			line:   "é # x",
			column: 4,
			want:   []string{"é # x", "  ^"},
		},
		{
			name:   "clipped tail",
			line:   "# " + strings.Repeat("a", 40),
			column: 1,
			width:  18,
			want:   []string{"# aaaaaa…", "^"},
		},
		{
			name:   "clipped head keeps caret visible",
			line:   strings.Repeat("x", 30) + "# T",
			column: 31,
			width:  18,
			want:   []string{"…xxxx# T", "     ^"},
		},
		{
			name:   "no caret for column zero",
			line:   "# T",
			column: 0,
			want:   []string{"# T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := styles.FormatSourceContext(tt.line, tt.column, tt.width)
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			require.Len(t, lines, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, "        "+want, lines[i])
			}
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.md", styles.FormatFileHeader("a.md", 0))
	assert.Equal(t, "a.md (1 issue)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md (4 issues)", styles.FormatFileHeader("a.md", 4))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name:  "clean single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				FilesProcessed:   4,
				FilesWithIssues:  2,
				DiagnosticsTotal: 3,
				DiagnosticsBySeverity: map[config.Severity]int{
					config.SeverityError:   1,
					config.SeverityWarning: 2,
				},
			},
			want: "3 issues (1 error, 2 warnings) in 2 files\n",
		},
		{
			name: "errored files",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesWithIssues:       1,
				FilesErrored:          1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 1},
			},
			want: "1 issue (1 warning) in 1 file, 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
