package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/plotline/internal/config"
)

func TestNewShowCommand(t *testing.T) {
	cmd := NewShowCommand()

	assert.Equal(t, "show [targets...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"rev", "template", "x", "y", "fields", "x-label", "y-label", "title", "no-header", "out"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve [targets...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	for _, flag := range []string{"rev", "port"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

// runInProject executes a command with a config bound to dir.
func runInProject(t *testing.T, dir string, cfg *config.Config, cmdFactory func() *cobra.Command, args []string) (string, error) {
	t.Helper()
	cfg.ProjectRoot = dir

	cmd := cmdFactory()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	ctx := WithConfig(context.Background(), cfg)
	ctx = WithLogger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cmd.SetContext(ctx)

	err := cmd.Execute()
	return out.String(), err
}

func TestShowJSONOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "metric.json"), []byte(`[{"val": 2}, {"val": 3}]`), 0o644))

	out, err := runInProject(t, dir, &config.Config{
		Plots:  []config.PlotConfig{{Path: "metric.json"}},
		Output: "json",
	}, NewShowCommand, nil)
	require.NoError(t, err)

	var parsed map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Contains(t, parsed, "metric.json")
	values := parsed["metric.json"]["data"].(map[string]any)["values"].([]any)
	assert.Len(t, values, 2)
}

func TestShowTableOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "metric.csv"), []byte("loss\n0.5\n0.3\n"), 0o644))

	out, err := runInProject(t, dir, &config.Config{
		Plots:  []config.PlotConfig{{Path: "metric.csv"}},
		Output: "table",
	}, NewShowCommand, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "metric.csv")
	assert.Contains(t, out, "loss")
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "(2 datapoints)")
}

func TestShowHTMLOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "metric.json"), []byte(`[{"val": 2}]`), 0o644))
	reportPath := filepath.Join(dir, "plots.html")

	out, err := runInProject(t, dir, &config.Config{
		Plots:  []config.PlotConfig{{Path: "metric.json"}},
		Output: "html",
	}, NewShowCommand, []string{"--out", reportPath})
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "vegaEmbed")
}

func TestShowNoPlots(t *testing.T) {
	_, err := runInProject(t, t.TempDir(), &config.Config{Output: "json"}, NewShowCommand, nil)
	assert.ErrorContains(t, err, "no plots found")
}

func TestTemplatesListOutput(t *testing.T) {
	out, err := runInProject(t, t.TempDir(), &config.Config{Output: "table"}, NewTemplatesCommand, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "default")
	assert.Contains(t, out, "scatter")
	assert.Contains(t, out, "builtin")
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	cmd := NewInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "plotline.yaml"))
	assert.DirExists(t, filepath.Join(dir, config.DefaultTemplatesDir))

	// refuses to overwrite without --force
	cmd = NewInitCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir})
	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "plotline v1.2.3\n", out.String())
}
