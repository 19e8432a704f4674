package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewTemplatesCommand creates the templates command.
func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List available plot templates",
		Long: `List the visualization templates available to this project.

Project templates live in the configured templates directory and shadow
the built-in templates of the same name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)

			entries := cc.Store.List()

			if resolveOutputMode(cc.Cfg.Output) == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Source"})
			for _, e := range entries {
				t.AppendRow(table.Row{e.Name, e.Source})
			}
			t.Render()
			fmt.Fprintf(cmd.OutOrStdout(), "(%d templates)\n", len(entries))
			return nil
		},
	}
	return cmd
}
