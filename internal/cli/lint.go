package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/headcheck/internal/configloader"
	"github.com/yaklabco/headcheck/internal/logging"
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
	"github.com/yaklabco/headcheck/pkg/lint/rules"
	goldmarkparser "github.com/yaklabco/headcheck/pkg/parser/goldmark"
	"github.com/yaklabco/headcheck/pkg/reporter"
	"github.com/yaklabco/headcheck/pkg/runner"
)

type lintFlags struct {
	format           string
	flavor           string
	depth            int
	jobs             int
	ignore           []string
	enable           []string
	disable          []string
	strict           bool
	noContext        bool
	compact          bool
	ruleFormat       string
	frontMatterTitle string
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long:  lintLongDescription + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint Markdown files for repeated top-level headings.

By default, lints all .md and .markdown files in the current directory
and subdirectories. Specify paths to lint specific files or directories.

Examples:
  headcheck lint                         # Lint current directory
  headcheck lint docs/                   # Lint docs directory
  headcheck lint README.md               # Lint single file
  headcheck lint --depth 2               # Treat level-2 headings as top level
  headcheck lint --front-matter-title title
  headcheck lint --format sarif          # Output SARIF for code scanning
  headcheck lint --strict                # Treat warnings as errors`

// envHelp lists the environment variables that override config files.
func envHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "  %-28s %s\n", v.Name, v.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// cliConfig builds the highest-precedence config layer from flags that were
// set explicitly, so unset flags never mask file or environment values.
func cliConfig(cmd *cobra.Command, flags *lintFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("front-matter-title") {
		cfg.FrontMatterTitle = flags.frontMatterTitle
	}
	if changed("depth") {
		cfg.SetRuleOption(rules.ToplevelRuleID, rules.OptionDepth, flags.depth)
	}

	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable

	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	logger.Debug("configuration loaded",
		logging.FieldFiles, loadResult.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDepth, cfg.Rules[rules.ToplevelRuleID].Options[rules.OptionDepth],
	)

	engine := lint.NewEngine(goldmarkparser.New(string(cfg.Flavor)), lint.DefaultRegistry)

	result, err := runner.New(engine).Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	})
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	logFileErrors(logger, result)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
		Registry:    lint.DefaultRegistry,
		ToolVersion: cmd.Root().Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &lintIssuesError{code: code}
	}

	return nil
}

// logFileErrors logs files that could not be linted. Missing, unreadable
// and unparsable files are skipped with a warning; anything else is an error.
func logFileErrors(logger *log.Logger, result *runner.Result) {
	for _, outcome := range result.Files {
		if outcome.Error == nil {
			continue
		}
		if lint.IsEngineError(outcome.Error) {
			logger.Warn("skipping file", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		logger.Error("lint failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
	}
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.depth, "depth", rules.DefaultToplevelDepth, "heading depth treated as top level")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs, names or aliases to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs, names or aliases to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON and SARIF output")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.frontMatterTitle, "front-matter-title", "",
		"front matter key whose value is the document title")
}
