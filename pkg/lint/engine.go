package lint

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yaklabco/headcheck/internal/logging"
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/frontmatter"
	"github.com/yaklabco/headcheck/pkg/mdast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Snapshot is the parsed file.
	Snapshot *mdast.FileSnapshot

	// Diagnostics contains all issues found, grouped by rule in rule ID order.
	// Within a rule, diagnostics keep the order the rule emitted them.
	Diagnostics []Diagnostic

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Engine coordinates parsing and rule execution for linting.
// An Engine holds no per-file state and is safe for concurrent use when its
// Parser is.
type Engine struct {
	// Parser parses Markdown files into FileSnapshots.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry

	// Transformers run in order after parsing and before rules.
	Transformers []Transformer
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry, transformers ...Transformer) *Engine {
	return &Engine{
		Parser:       parser,
		Registry:     registry,
		Transformers: transformers,
	}
}

// LintPath reads and lints a single file from disk.
func (e *Engine) LintPath(ctx context.Context, path string, cfg *config.Config) (*FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, categorizeReadError(err)
	}

	return e.LintFile(ctx, path, content, cfg)
}

// LintFile parses and lints a single file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	for _, transformer := range e.transformers(cfg) {
		if err := transformer.Transform(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("transform %s: %w", transformer.Name(), err)
		}
	}

	resolved := ResolveRules(e.Registry, cfg)

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for diagIdx := range diags {
			diags[diagIdx].Severity = rr.Severity

			if diags[diagIdx].FilePath == "" {
				diags[diagIdx].FilePath = path
			}

			if diags[diagIdx].RuleName == "" {
				diags[diagIdx].RuleName = rr.Rule.Name()
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	logger.Debug("linted file",
		logging.FieldPath, path,
		logging.FieldRules, len(resolved),
		logging.FieldDiagnostics, len(result.Diagnostics),
		logging.FieldDuration, time.Since(start),
	)

	return result, nil
}

// transformers returns the configured transformers plus those implied by cfg.
func (e *Engine) transformers(cfg *config.Config) []Transformer {
	if cfg == nil || cfg.FrontMatterTitle == "" {
		return e.Transformers
	}

	transformers := make([]Transformer, 0, len(e.Transformers)+1)
	transformers = append(transformers, frontmatter.TitleTransformer{Key: cfg.FrontMatterTitle})
	return append(transformers, e.Transformers...)
}
