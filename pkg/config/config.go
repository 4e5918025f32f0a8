// Package config defines core configuration types for headcheck.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-multiple-toplevel-headings"
	RuleFormatID       RuleFormat = "id"       // "HC001"
	RuleFormatCombined RuleFormat = "combined" // "HC001/no-multiple-toplevel-headings"
)

// IsValid returns true if the rule format is known.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is supported by the parser.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Config is the root configuration structure for headcheck.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor" toml:"flavor"`

	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default"`

	// FrontMatterTitle is the front matter key whose value becomes a generated
	// title heading. Empty disables title synthesis.
	FrontMatterTitle string `yaml:"front_matter_title,omitempty" toml:"front_matter_title"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Jobs:            0, // 0 means use NumCPU
	}
}

// SetRuleOption sets a single option for a rule, creating the rule entry as needed.
func (c *Config) SetRuleOption(ruleID, key string, value any) {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	rc := c.Rules[ruleID]
	if rc.Options == nil {
		rc.Options = make(map[string]any)
	}
	rc.Options[key] = value
	c.Rules[ruleID] = rc
}
