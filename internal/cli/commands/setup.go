// Package commands implements the plotline subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/plotline/internal/config"
	"github.com/leapstack-labs/plotline/internal/plots"
	"github.com/leapstack-labs/plotline/internal/scm"
	"github.com/leapstack-labs/plotline/internal/template"
)

type configKey struct{}

type loggerKey struct{}

// WithConfig stores the loaded config in the command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the logger in the command context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func getConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		TemplatesDir: config.DefaultTemplatesDir,
		Output:       config.DefaultOutput,
		ProjectRoot:  ".",
	}
}

func getLogger(cmd *cobra.Command) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Service *plots.Service
	Store   *template.Store
}

// NewCommandContext wires the plots service from the loaded config: a
// git-backed content provider rooted at the project, the declared plots
// registry and the project template store.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	store := template.NewStore(cfg.TemplatesPath())
	service := plots.New(plots.Options{
		Content:   scm.New(cfg.ProjectRoot, logger),
		Registry:  cfg,
		Templates: store,
		Logger:    logger,
	})

	return &CommandContext{Cfg: cfg, Logger: logger, Service: service, Store: store}
}

// resolveOutputMode maps the configured output mode to a concrete one.
// Auto picks an HTML report on a terminal and JSON when piped.
func resolveOutputMode(mode string) string {
	switch mode {
	case "", "auto":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return "html"
		}
		return "json"
	default:
		return mode
	}
}
