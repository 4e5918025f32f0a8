package config

// defaultTemplate is written by "headcheck init".
const defaultTemplate = `# headcheck configuration
# See: https://github.com/yaklabco/headcheck

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Default severity for all rules: error, warning, or info
# severity_default: warning

# Front matter key whose value counts as the document title.
# The synthesized title heading is never reported as a duplicate.
# front_matter_title: title

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

rules:
  # no-multiple-toplevel-headings: at most one heading at the reference depth.
  HC001:
    enabled: true
    # severity: warning
    options:
      depth: 1
`

// DefaultTemplate returns the commented configuration file written by init.
// The template round-trips through FromYAML.
func DefaultTemplate() []byte {
	return []byte(defaultTemplate)
}
