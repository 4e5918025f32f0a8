// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldSource     = "source"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldJobs   = "jobs"
	FieldDepth  = "depth"
	FieldFormat = "format"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldDiagnostics      = "diagnostics"
	FieldRules            = "rules"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldAliases     = "aliases"
	FieldSeverity    = "severity"
	FieldDescription = "description"
)
