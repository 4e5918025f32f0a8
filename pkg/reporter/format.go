package reporter

import (
	"fmt"

	"github.com/yaklabco/headcheck/pkg/config"
)

// Format represents an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText  = config.FormatText
	FormatJSON  = config.FormatJSON
	FormatSARIF = config.FormatSARIF
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif", formatStr)
	}
}
