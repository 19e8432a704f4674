package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/plotline/internal/plotdata"
	"github.com/leapstack-labs/plotline/internal/plots"
	"github.com/leapstack-labs/plotline/internal/report"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var (
		revs     []string
		tmplName string
		x        string
		y        string
		fields   []string
		xLabel   string
		yLabel   string
		title    string
		noHeader bool
		out      string
	)

	cmd := &cobra.Command{
		Use:   "show [targets...]",
		Short: "Render metric files into plots",
		Long: `Render tracked metric files into filled Vega-Lite specs.

Without arguments all plots declared in plotline.yaml are rendered.
Explicit targets override the declared list. Use --rev to aggregate
datapoints from git revisions alongside the working tree.`,
		Example: `  # Render all declared plots into plots.html
  plotline show

  # Render one file and compare two tags against the working tree
  plotline show logs/loss.csv --rev workspace --rev v2.0 --rev v1.0

  # Pick the axes and print the raw specs
  plotline show metrics.json -x step -y loss -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			props := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("template") {
				props["template"] = tmplName
			}
			if flags.Changed("x") {
				props["x"] = x
			}
			if flags.Changed("y") {
				props["y"] = y
			}
			if flags.Changed("fields") {
				props["fields"] = fields
			}
			if flags.Changed("x-label") {
				props["x_label"] = xLabel
			}
			if flags.Changed("y-label") {
				props["y_label"] = yLabel
			}
			if flags.Changed("title") {
				props["title"] = title
			}
			if flags.Changed("no-header") {
				props["header"] = !noHeader
			}

			mode := resolveOutputMode(cc.Cfg.Output)

			// table mode works on datapoints, not filled specs
			if mode == "table" {
				return showTables(cmd, cc, args, revs, props)
			}

			specs, err := cc.Service.Show(cmd.Context(), args, revs, props)
			if err != nil {
				return err
			}

			targets := args
			if len(targets) == 0 {
				targets = cc.Cfg.ListTargets()
			}

			switch mode {
			case "json":
				return writeSpecsJSON(cmd.OutOrStdout(), targets, specs)
			case "html":
				page := report.Page{Title: "plotline"}
				for _, target := range targets {
					page.Plots = append(page.Plots, report.Plot{Name: target, Spec: specs[target]})
				}
				if err := report.WriteFile(out, page); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
				return nil
			default:
				return fmt.Errorf("unknown output mode %q (expected auto, html, json or table)", mode)
			}
		},
	}

	cmd.Flags().StringArrayVar(&revs, "rev", nil, "Revision to aggregate (repeatable, default: workspace)")
	cmd.Flags().StringVarP(&tmplName, "template", "t", "", "Template name or path")
	cmd.Flags().StringVarP(&x, "x", "x", "", "Field for the x axis")
	cmd.Flags().StringVarP(&y, "y", "y", "", "Field for the y axis")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to keep from each datapoint")
	cmd.Flags().StringVar(&xLabel, "x-label", "", "X axis label")
	cmd.Flags().StringVar(&yLabel, "y-label", "", "Y axis label")
	cmd.Flags().StringVar(&title, "title", "", "Plot title")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first delimited row as data, not a header")
	cmd.Flags().StringVar(&out, "out", "plots.html", "Report file for html output")

	return cmd
}

// writeSpecsJSON prints the raw filled specs keyed by target, preserving
// the request order of targets.
func writeSpecsJSON(w io.Writer, targets []string, specs map[string]string) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, target := range targets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(target)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(specs[target])
	}
	buf.WriteByte('}')

	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	indented.WriteByte('\n')
	_, err := w.Write(indented.Bytes())
	return err
}

// showTables prints each target's aggregated datapoints as a table.
func showTables(cmd *cobra.Command, cc *CommandContext, targets, revs []string, explicit map[string]any) error {
	if len(revs) == 0 {
		revs = []string{plots.WorkspaceRevision}
	}
	if len(targets) == 0 {
		targets = cc.Cfg.ListTargets()
	}
	if len(targets) == 0 {
		return &plots.NoPlotsError{}
	}

	w := cmd.OutOrStdout()
	for i, target := range targets {
		props, err := plotdata.MergeProps(cc.Cfg.DefaultProps(target), explicit)
		if err != nil {
			return err
		}
		datapoints, err := cc.Service.Collect(cmd.Context(), target, revs, props)
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", target)
		renderDatapoints(w, datapoints)
	}
	return nil
}

func renderDatapoints(w io.Writer, datapoints []*plotdata.Record) {
	// column order follows first appearance across records
	var cols []string
	seen := map[string]struct{}{}
	for _, dp := range datapoints {
		for _, k := range dp.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, dp := range datapoints {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			if v, ok := dp.Get(col); ok {
				row[i] = fmt.Sprintf("%v", v)
			} else {
				row[i] = ""
			}
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintf(w, "(%d datapoints)\n", len(datapoints))
}
