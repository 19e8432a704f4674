// Package config loads the project configuration for plotline.
//
// A project is any directory containing a plotline.yaml (or .yml). The
// file declares the tracked plots and their default rendering options,
// plus global settings like the custom templates directory.
package config

import "path/filepath"

// Config holds all project configuration options.
type Config struct {
	Plots        []PlotConfig `koanf:"plots"`
	TemplatesDir string       `koanf:"templates_dir"`
	Verbose      bool         `koanf:"verbose"`
	Output       string       `koanf:"output"`

	// ProjectRoot is the directory the config was resolved against.
	// Set by Load, never read from the file itself.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the path of the file actually loaded, if any.
	ConfigFile string `koanf:"-"`
}

// PlotConfig declares one tracked metric file and its default rendering
// options. All fields except Path are optional.
type PlotConfig struct {
	Path     string   `koanf:"path"`
	Template string   `koanf:"template"`
	X        string   `koanf:"x"`
	Y        string   `koanf:"y"`
	Fields   []string `koanf:"fields"`
	XLabel   string   `koanf:"x_label"`
	YLabel   string   `koanf:"y_label"`
	Title    string   `koanf:"title"`
	Header   *bool    `koanf:"header"`
}

// ListTargets returns the declared plot paths in declaration order.
func (c *Config) ListTargets() []string {
	targets := make([]string, 0, len(c.Plots))
	for _, p := range c.Plots {
		targets = append(targets, p.Path)
	}
	return targets
}

// DefaultProps returns the declared rendering options for a path as a
// raw property map, or nil when the path is not declared.
func (c *Config) DefaultProps(path string) map[string]any {
	for _, p := range c.Plots {
		if p.Path != path {
			continue
		}
		props := map[string]any{}
		if p.Template != "" {
			props["template"] = p.Template
		}
		if p.X != "" {
			props["x"] = p.X
		}
		if p.Y != "" {
			props["y"] = p.Y
		}
		if len(p.Fields) > 0 {
			props["fields"] = p.Fields
		}
		if p.XLabel != "" {
			props["x_label"] = p.XLabel
		}
		if p.YLabel != "" {
			props["y_label"] = p.YLabel
		}
		if p.Title != "" {
			props["title"] = p.Title
		}
		if p.Header != nil {
			props["header"] = *p.Header
		}
		return props
	}
	return nil
}

// TemplatesPath returns the templates directory resolved against the
// project root.
func (c *Config) TemplatesPath() string {
	if c.TemplatesDir == "" || filepath.IsAbs(c.TemplatesDir) {
		return c.TemplatesDir
	}
	return filepath.Join(c.ProjectRoot, c.TemplatesDir)
}
