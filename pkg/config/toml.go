package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// FromTOML parses a configuration from TOML bytes.
//
//	flavor = "gfm"
//
//	[rules.HC001.options]
//	depth = 2
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, nil
}
