package cli

import (
	"errors"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/runner"
)

// Exit codes for headcheck.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrLintIssuesFound is returned when lint issues decide the exit code.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("invalid configuration")
)

// lintIssuesError carries the exit code chosen for a lint run.
type lintIssuesError struct {
	code int
}

func (e *lintIssuesError) Error() string { return ErrLintIssuesFound.Error() }

func (e *lintIssuesError) Is(target error) bool { return target == ErrLintIssuesFound }

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.DiagnosticsBySeverity[config.SeverityError] > 0 {
		return ExitLintErrors
	}

	if strict && result.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var issues *lintIssuesError
	if errors.As(err, &issues) {
		return issues.code
	}

	if errors.Is(err, ErrConfig) {
		return ExitConfigError
	}

	return ExitInternalError
}
