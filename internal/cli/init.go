package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/headcheck/internal/configloader"
	"github.com/yaklabco/headcheck/internal/logging"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new headcheck configuration file",
		Long: `Create a new .headcheck.yml configuration file in the current directory
with the default settings documented inline.

Examples:
  headcheck init                       Create .headcheck.yml
  headcheck init --force               Overwrite an existing file
  headcheck init --output custom.yml   Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := configloader.WriteDefault(absPath, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'headcheck rules' to see all available rules")

	return nil
}
