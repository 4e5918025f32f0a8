package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
	"github.com/yaklabco/headcheck/pkg/lint/rules"
)

// newProject creates a temp directory marked as a VCS root so the upward
// config search never escapes it.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func depthOption(t *testing.T, cfg *config.Config) int {
	t.Helper()

	rc, ok := cfg.Rules[rules.ToplevelRuleID]
	require.True(t, ok, "HC001 config missing")
	depth, ok := lint.AsInt(rc.Options[rules.OptionDepth])
	require.True(t, ok, "depth option is not an integer: %#v", rc.Options[rules.OptionDepth])
	return depth
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(newProject(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, string(config.SeverityWarning), result.Config.SeverityDefault)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), `
flavor: gfm
rules:
  HC001:
    severity: error
    options:
      depth: 2
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, 2, depthOption(t, result.Config))
	require.NotNil(t, result.Config.Rules[rules.ToplevelRuleID].Severity)
	assert.Equal(t, "error", *result.Config.Rules[rules.ToplevelRuleID].Severity)
	assert.Equal(t, []string{filepath.Join(dir, ".headcheck.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.toml"), `
flavor = "gfm"
front_matter_title = "title"

[rules.single-title.options]
depth = 3
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, "title", result.Config.FrontMatterTitle)
	assert.Equal(t, 3, depthOption(t, result.Config))
	assert.NotContains(t, result.Config.Rules, "single-title")
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), "flavor: gfm\n")
	sub := filepath.Join(dir, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolatedOptions(sub))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, filepath.Join(dir, ".headcheck.yml"), result.Paths.Project)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), "flavor: gfm\nseverity_default: info\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "severity_default: error\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
}

func TestLoad_IgnoreProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), "flavor: gfm\n")

	opts := isolatedOptions(dir)
	opts.IgnoreProjectConfig = true

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
}

func TestLoad_CLIOverridesFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), `
rules:
  HC001:
    options:
      depth: 2
`)

	cli := &config.Config{Format: config.FormatJSON}
	cli.SetRuleOption(rules.ToplevelRuleName, rules.OptionDepth, 4)

	opts := isolatedOptions(dir)
	opts.CLIConfig = cli

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 4, depthOption(t, result.Config))
	assert.Contains(t, cli.Rules, rules.ToplevelRuleName, "CLI config must not be mutated")
}

func TestLoad_DuplicateAliasKeysWarn(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), `
rules:
  MD025:
    options:
      depth: 2
  single-h1:
    options:
      depth: 3
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, 3, depthOption(t, result.Config))
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
}

func TestLoad_UnknownRuleIsWarning(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), `
rules:
  no-such-rule:
    enabled: false
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule "no-such-rule"`)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "zero depth",
			content: "rules:\n  HC001:\n    options:\n      depth: 0\n",
			wantErr: "rules.HC001.options.depth",
		},
		{
			name:    "non-integer depth",
			content: "rules:\n  single-h1:\n    options:\n      depth: two\n",
			wantErr: "must be a positive integer",
		},
		{
			name:    "depth beyond int range",
			content: "rules:\n  HC001:\n    options:\n      depth: 1e20\n",
			wantErr: "must be a positive integer",
		},
		{
			name:    "unknown flavor",
			content: "flavor: pandoc\n",
			wantErr: "invalid flavor",
		},
		{
			name:    "bad severity",
			content: "rules:\n  HC001:\n    severity: fatal\n",
			wantErr: "invalid severity",
		},
		{
			name:    "malformed yaml",
			content: "rules: [\n",
			wantErr: "parse yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			writeFile(t, filepath.Join(dir, ".headcheck.yml"), tt.content)

			_, err := Load(context.Background(), isolatedOptions(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	opts := isolatedOptions(dir)
	opts.ExplicitPath = filepath.Join(dir, "missing.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

//nolint:paralleltest // t.Setenv is incompatible with t.Parallel.
func TestLoad_EnvOverridesFiles(t *testing.T) {
	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), `
flavor: commonmark
rules:
  single-h1:
    options:
      depth: 2
`)

	t.Setenv("HEADCHECK_FLAVOR", "gfm")
	t.Setenv("HEADCHECK_DEPTH", "5")
	t.Setenv("HEADCHECK_IGNORE", "vendor/**, build/**")

	opts := LoadOptions{WorkingDir: dir, IgnoreUserConfig: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, 5, depthOption(t, result.Config))
	assert.Equal(t, []string{"vendor/**", "build/**"}, result.Config.Ignore)
}

//nolint:paralleltest // t.Setenv is incompatible with t.Parallel.
func TestLoad_EnvInvalidInteger(t *testing.T) {
	t.Setenv("HEADCHECK_JOBS", "many")

	opts := LoadOptions{WorkingDir: newProject(t), IgnoreUserConfig: true}

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEADCHECK_JOBS")
}

//nolint:paralleltest // t.Setenv is incompatible with t.Parallel.
func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "headcheck", "config.yaml"), "severity_default: info\nflavor: gfm\n")

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".headcheck.yml"), "flavor: commonmark\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "info", result.Config.SeverityDefault)
	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor, "project config overrides user config")
	assert.Len(t, result.LoadedFrom, 2)
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)

	require.NoError(t, WriteDefault(path, false))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)

	err = WriteDefault(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteDefault(path, true))
}

func TestValidate_Lists(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"single-h1", "MD999"}
	cfg.Ignore = []string{"[invalid"}
	cfg.Jobs = -1

	result := Validate(cfg)

	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "jobs", result.Errors[0].Field)
	assert.Equal(t, "ignore[0]", result.Errors[1].Field)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "MD999", result.Warnings[0].Value)
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flavor = "pandoc"

	result := ValidateWithFile(cfg, "/tmp/.headcheck.yml")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `/tmp/.headcheck.yml: flavor: invalid flavor "pandoc"; must be one of: commonmark, gfm`,
		result.Errors[0].Error())
}
