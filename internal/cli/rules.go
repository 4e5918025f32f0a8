package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/headcheck/internal/logging"
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, aliases, descriptions
and default severity.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRules(cmd, lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func listRules(cmd *cobra.Command, registry *lint.Registry, flags *rulesFlags) error {
	rules := registry.Rules()

	switch config.OutputFormat(flags.format) {
	case config.FormatJSON:
		return outputRulesJSON(cmd, registry, rules)
	case config.FormatText:
	default:
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}

	logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())
	ruleFormat := config.RuleFormat(flags.ruleFormat)

	for _, rule := range rules {
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldAliases, strings.Join(registry.Aliases(rule.ID()), ","),
			logging.FieldDescription, rule.Description(),
		)
	}

	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(cmd *cobra.Command, registry *lint.Registry, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		aliases := registry.Aliases(rule.ID())
		if aliases == nil {
			aliases = []string{}
		}

		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Aliases:     aliases,
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
