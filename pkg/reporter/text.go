package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/headcheck/internal/ui/pretty"
	"github.com/yaklabco/headcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.HasIssues() {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Result.IssueCount()))

		for _, diag := range file.Result.Diagnostics {
			diag.FilePath = path

			format := pretty.DiagnosticFormat{RuleFormat: r.opts.RuleFormat, Width: r.width}
			if r.opts.ShowContext && file.Result.Snapshot != nil {
				format.SourceLine = string(file.Result.Snapshot.LineContent(diag.StartLine))
			}

			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, format))
			total++
		}

		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
