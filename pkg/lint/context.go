package lint

import (
	"context"
	"math"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/mdast"
)

// RuleContext is the per-invocation parameter object handed to Rule.Apply.
// It is created for one rule on one file and discarded afterwards.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
// YAML decodes integers as int, TOML as int64 and JSON as float64.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v, ok := AsInt(rc.Option(key, defaultValue))
	if !ok {
		return defaultValue
	}
	return v
}

// AsInt converts a decoded option value to int.
// Fractional floats and values outside the int range are rejected.
func AsInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		if int64(int(val)) != val {
			return 0, false
		}
		return int(val), true
	case uint64:
		if val > math.MaxInt {
			return 0, false
		}
		return int(val), true
	case float64:
		if val != math.Trunc(val) || val < math.MinInt || val >= math.MaxInt {
			return 0, false
		}
		return int(val), true
	default:
		return 0, false
	}
}
