package runner

import (
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
)

// FileOutcome is the lint result for one discovered file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Result is nil when Error is set.
	Result *lint.FileResult

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	// RuleErrors counts rules that failed on some file.
	RuleErrors int

	DiagnosticsTotal      int
	DiagnosticsBySeverity map[config.Severity]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path regardless of completion order.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic of the run in file order, then
// document order within a file.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}

	diags := make([]lint.Diagnostic, 0, r.Stats.DiagnosticsTotal)
	for _, outcome := range r.Files {
		if outcome.Result != nil {
			diags = append(diags, outcome.Result.Diagnostics...)
		}
	}
	return diags
}

// Errors returns the per-file errors of the run.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.RuleErrors += len(outcome.Result.RuleErrors)

	if outcome.Result.HasIssues() {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range outcome.Result.Diagnostics {
		r.Stats.DiagnosticsTotal++

		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
