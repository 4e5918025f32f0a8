package rules

import (
	"fmt"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
	"github.com/yaklabco/headcheck/pkg/mdast"
)

const (
	// ToplevelRuleID is the identifier of the top-level heading rule.
	ToplevelRuleID = "HC001"

	// ToplevelRuleName is the canonical name of the top-level heading rule.
	ToplevelRuleName = "no-multiple-toplevel-headings"

	// OptionDepth selects the heading depth treated as top level.
	OptionDepth = "depth"

	// DefaultToplevelDepth is the reference depth when none is configured.
	DefaultToplevelDepth = 1
)

// ToplevelOptions configures CheckToplevelHeadings.
type ToplevelOptions struct {
	// Depth is the heading depth treated as top level. Values below 1 mean
	// DefaultToplevelDepth.
	Depth int
}

// DefaultToplevelOptions returns the options used when nothing is configured.
func DefaultToplevelOptions() ToplevelOptions {
	return ToplevelOptions{Depth: DefaultToplevelDepth}
}

func (o ToplevelOptions) depth() int {
	if o.Depth < 1 {
		return DefaultToplevelDepth
	}
	return o.Depth
}

// toplevelTracker records whether a heading at the reference depth has
// been seen in the current document.
type toplevelTracker struct {
	depth int
	seen  bool
}

// observe updates the tracker with a heading and reports whether the heading
// repeats the top level. Generated headings and other depths are ignored.
func (t *toplevelTracker) observe(heading *mdast.Node) bool {
	if heading.IsGenerated() || heading.HeadingLevel() != t.depth {
		return false
	}
	if !t.seen {
		t.seen = true
		return false
	}
	return true
}

// CheckToplevelHeadings reports every heading at the reference depth after
// the first one, in document order. Headings nested in containers such as
// block quotes and list items count like any other.
func CheckToplevelHeadings(root *mdast.Node, opts ToplevelOptions) []lint.Diagnostic {
	tracker := toplevelTracker{depth: opts.depth()}

	var diags []lint.Diagnostic
	for heading := range mdast.OfKind(root, mdast.NodeHeading) {
		if !tracker.observe(heading) {
			continue
		}
		diags = append(diags, toplevelDiagnostic(heading, tracker.depth))
	}

	return diags
}

// ToplevelMessage formats the message reported for a repeated top-level heading.
func ToplevelMessage(pos mdast.Position) string {
	return fmt.Sprintf("Don't use multiple top level headings (%d:%d)", pos.Line, pos.Column)
}

func toplevelDiagnostic(heading *mdast.Node, depth int) lint.Diagnostic {
	pos := heading.SourcePosition()
	return lint.NewDiagnostic(ToplevelRuleID, heading, ToplevelMessage(pos.Start())).
		WithSeverity(config.SeverityWarning).
		WithSuggestion(fmt.Sprintf("Keep one depth %d heading and use depth %d for the others", depth, depth+1)).
		Build()
}

// ToplevelHeadingsRule checks that at most one heading uses the top-level depth.
type ToplevelHeadingsRule struct {
	lint.BaseRule
}

// NewToplevelHeadingsRule creates a new top-level heading rule.
func NewToplevelHeadingsRule() *ToplevelHeadingsRule {
	return &ToplevelHeadingsRule{
		BaseRule: lint.NewBaseRule(
			ToplevelRuleID,
			ToplevelRuleName,
			"Multiple top-level headings in the same document",
			[]string{"headings"},
		),
	}
}

// Apply reports repeated top-level headings.
func (r *ToplevelHeadingsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil {
		return nil, nil
	}

	if ctx.Cancelled() {
		return nil, ctx.Ctx.Err()
	}

	opts := ToplevelOptions{Depth: ctx.OptionInt(OptionDepth, DefaultToplevelDepth)}
	return CheckToplevelHeadings(ctx.Root, opts), nil
}
