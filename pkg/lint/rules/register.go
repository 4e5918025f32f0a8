package rules

import "github.com/yaklabco/headcheck/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewToplevelHeadingsRule()) // HC001
}

// RegisterLegacyAliases registers alternate names that configuration files
// written for other Markdown linters use for the same checks.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("single-h1", ToplevelRuleID)
	registry.RegisterAlias("single-title", ToplevelRuleID)
	registry.RegisterAlias("MD025", ToplevelRuleID)
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
