package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headcheck/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies rules", func(t *testing.T) {
		t.Parallel()

		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"HC001": {
					Enabled:  &enabled,
					Severity: &severity,
					Options:  map[string]any{"depth": 2},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		require.Contains(t, clone.Rules, "HC001")
		assert.True(t, *clone.Rules["HC001"].Enabled)
		assert.Equal(t, "error", *clone.Rules["HC001"].Severity)

		*clone.Rules["HC001"].Severity = "info"
		clone.Rules["HC001"].Options["depth"] = 3
		assert.Equal(t, "error", *original.Rules["HC001"].Severity)
		assert.Equal(t, 2, original.Rules["HC001"].Options["depth"])
	})

	t.Run("copies CLI fields and slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"vendor/**"}
		original.EnableRules = []string{"HC001"}
		original.Format = config.FormatJSON
		original.Jobs = 4

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.EnableRules[0] = "changed"

		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, "HC001", original.EnableRules[0])
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 4, clone.Jobs)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM
	cfg.FrontMatterTitle = "title"
	cfg.SetRuleOption("HC001", "depth", 2)
	cfg.Format = config.FormatJSON

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "format")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, parsed.Flavor)
	assert.Equal(t, "title", parsed.FrontMatterTitle)
	assert.Equal(t, 2, parsed.Rules["HC001"].Options["depth"])
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# generated")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# generated\n\nflavor: commonmark")
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("rules: [unterminated"))
	require.Error(t, err)
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	data := []byte(`
flavor = "gfm"
ignore = ["vendor/**"]

[rules.HC001]
severity = "error"

[rules.HC001.options]
depth = 2
`)

	cfg, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	require.Contains(t, cfg.Rules, "HC001")
	assert.Equal(t, "error", *cfg.Rules["HC001"].Severity)
	assert.EqualValues(t, 2, cfg.Rules["HC001"].Options["depth"])
}

func TestFromTOMLUnknownKey(t *testing.T) {
	t.Parallel()

	_, err := config.FromTOML([]byte(`colour = "red"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestDefaultTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(config.DefaultTemplate())
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	require.Contains(t, cfg.Rules, "HC001")
	assert.True(t, *cfg.Rules["HC001"].Enabled)
	assert.Equal(t, 1, cfg.Rules["HC001"].Options["depth"])
}
