package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint/rules"
)

// envVarPrefix is the prefix for all headcheck environment variables.
const envVarPrefix = "HEADCHECK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines one environment variable to config field mapping.
type envMapping struct {
	suffix      string
	field       string
	typ         envFieldType
	description string
}

// envMappings lists the supported variables (without prefix) in a stable order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{"FLAVOR", "flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	{"SEVERITY_DEFAULT", "severity_default", envTypeString, "Default severity: error, warning, or info"},
	{"FRONT_MATTER_TITLE", "front_matter_title", envTypeString, "Front matter key treated as the document title"},
	{"FORMAT", "format", envTypeString, "Output format: text, json, or sarif"},
	{"JOBS", "jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	{"DEPTH", "depth", envTypeInt, "Heading depth treated as top level"},
	{"IGNORE", "ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with HEADCHECK_ (e.g., HEADCHECK_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, mapping := range envMappings {
		envVar := envVarPrefix + mapping.suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "severity_default":
		cfg.SeverityDefault = value
	case "front_matter_title":
		cfg.FrontMatterTitle = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "depth":
		cfg.SetRuleOption(rules.ToplevelRuleID, rules.OptionDepth, value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables in a stable order.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for _, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        envVarPrefix + mapping.suffix,
			Description: mapping.description,
		})
	}
	return vars
}
