package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/plotline/internal/config"
)

const starterConfig = `# Plotline project configuration.
#
# Declare the metric files to plot and their default rendering options.
# Run 'plotline show' to render them, 'plotline serve' for live reload.

templates_dir: .plotline/templates

plots: []
#  - path: logs/loss.csv
#    y: loss
#    title: Training loss
#  - path: metrics/eval.json
#    template: scatter
#    x: precision
#    y: recall
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new plotline project",
		Long: `Initialize a new plotline project.

This creates:
  - plotline.yaml configuration file
  - .plotline/templates/ directory for custom templates`,
		Example: `  # Initialize in current directory
  plotline init

  # Initialize in a new directory
  plotline init my-project

  # Force overwrite existing config
  plotline init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			configPath := filepath.Join(dir, "plotline.yaml")
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("plotline.yaml already exists. Use --force to overwrite")
			}

			if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			if err := os.MkdirAll(filepath.Join(dir, config.DefaultTemplatesDir), 0750); err != nil {
				return fmt.Errorf("failed to create templates directory: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Plotline project initialized!")
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, "Next steps:")
			fmt.Fprintln(w, "  1. Declare metric files in plotline.yaml")
			fmt.Fprintln(w, "  2. Run 'plotline show' to render them")
			fmt.Fprintln(w, "  3. Run 'plotline serve' for live reload while training")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}
