package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/plotline/internal/plots"
	"github.com/leapstack-labs/plotline/internal/report"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		revs []string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve [targets...]",
		Short: "Serve plots with live reload",
		Long: `Serve the rendered plots over HTTP and rebuild them whenever a
metric file or template changes. Connected browsers reload automatically.`,
		Example: `  # Serve all declared plots
  plotline serve

  # Serve one file, comparing the working tree against a tag
  plotline serve logs/loss.csv --rev workspace --rev v1.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			targets := args
			if len(targets) == 0 {
				targets = cc.Cfg.ListTargets()
				if len(targets) == 0 {
					return &plots.NoPlotsError{}
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := report.NewDevServer(report.DevOptions{
				Service:    cc.Service,
				Root:       cc.Cfg.ProjectRoot,
				Targets:    targets,
				Revs:       revs,
				ExtraWatch: []string{cc.Cfg.TemplatesPath()},
				Port:       port,
				Logger:     cc.Logger,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving plots at http://localhost:%d (Ctrl+C to stop)\n", port)
			return server.Serve(ctx)
		},
	}

	cmd.Flags().StringArrayVar(&revs, "rev", nil, "Revision to aggregate (repeatable, default: workspace)")
	cmd.Flags().IntVar(&port, "port", 8765, "Port to serve on")

	return cmd
}
