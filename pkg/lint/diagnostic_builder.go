package lint

import (
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/mdast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule and node.
// The diagnostic takes the node's span and keeps a reference to the node.
func NewDiagnostic(ruleID string, node *mdast.Node, message string) *DiagnosticBuilder {
	var filePath string
	var pos mdast.SourcePosition

	if node != nil {
		pos = node.SourcePosition()
		if node.File != nil {
			filePath = node.File.Path
		}
	}

	builder := NewDiagnosticAt(ruleID, filePath, pos, message)
	builder.diag.Node = node
	return builder
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos mdast.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
