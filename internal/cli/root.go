// Package cli provides the Cobra command structure for headcheck.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/headcheck/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root headcheck command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:     "headcheck",
		Version: info.Version,
		Short:   "Check that Markdown documents have a single top-level heading",
		Long: `headcheck lints Markdown files for repeated top-level headings.

A document may contain at most one heading at the reference depth (1 by
default, configurable with --depth or the HC001 "depth" option). Every later
heading at that depth is reported with the position of the offending heading.
Headings synthesized from front matter titles never count.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
