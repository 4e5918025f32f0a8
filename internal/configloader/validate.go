package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
	"github.com/yaklabco/headcheck/pkg/lint/rules"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.HC001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Validate checks a configuration for errors and warnings against the
// default rule registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks a configuration, resolving rule keys in registry.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.addError("severity_default", cfg.SeverityDefault,
			fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault))
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, sarif", cfg.Format))
	}

	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.addError("rule_format", cfg.RuleFormat,
			fmt.Sprintf("invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateRules(cfg, registry, result)
	validateRuleLists(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// validateRules checks rule configurations in sorted key order.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	ruleIDs := slices.Sorted(func(yield func(string) bool) {
		for id := range cfg.Rules {
			if !yield(id) {
				return
			}
		}
	})

	for _, ruleID := range ruleIDs {
		ruleCfg := cfg.Rules[ruleID]
		field := "rules." + ruleID

		canonicalID, _, known := registry.Resolve(ruleID)
		if !known {
			result.addWarning(field, ruleID, fmt.Sprintf("unknown rule %q; it will be ignored", ruleID))
		}

		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.addError(field+".severity", *ruleCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity))
		}

		if canonicalID == rules.ToplevelRuleID {
			validateDepth(field, ruleCfg, result)
		}
	}
}

// validateDepth requires the depth option, when present, to be a positive integer.
func validateDepth(field string, ruleCfg config.RuleConfig, result *ValidationResult) {
	raw, ok := ruleCfg.Options[rules.OptionDepth]
	if !ok {
		return
	}

	depth, isInt := lint.AsInt(raw)
	if !isInt || depth < 1 {
		result.addError(field+".options."+rules.OptionDepth, raw,
			fmt.Sprintf("invalid depth %v; must be a positive integer", raw))
	}
}

// validateRuleLists warns about unknown rules in --enable and --disable.
func validateRuleLists(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	check := func(field string, keys []string) {
		for _, key := range keys {
			if _, _, ok := registry.Resolve(key); !ok {
				result.addWarning(field, key, fmt.Sprintf("unknown rule %q; it will be ignored", key))
			}
		}
	}

	check("enable", cfg.EnableRules)
	check("disable", cfg.DisableRules)
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
