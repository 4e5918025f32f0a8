package reporter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowContext includes the source line and a caret under each diagnostic.
	ShowContext bool

	// ShowSummary prints the one-line summary after text output.
	ShowSummary bool

	// Width clips source context; 0 detects the terminal width of Writer.
	Width int

	// Compact disables indentation of JSON and SARIF output.
	Compact bool

	// RuleFormat controls how rule identifiers appear in text output.
	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as-is.
	WorkingDir string

	// Registry supplies rule metadata for SARIF output. Optional.
	Registry *lint.Registry

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatName,
	}
}

// displayPath converts an absolute path to one relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
