package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search
// for a config file.
const maxUpwardSearchLevels = 10

// configExistsIn checks if a plotline config file exists in the directory.
func configExistsIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// FindProjectRoot searches upward from startDir for a plotline config
// file. Returns startDir itself when none is found within
// maxUpwardSearchLevels.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return startDir
}

// Load loads configuration from file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// cfgFile is an explicit config file path; when empty the config file is
// searched upward from the current working directory.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	projectRoot, configFile, err := resolveProject(cfgFile)
	if err != nil {
		return nil, err
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"templates_dir": DefaultTemplatesDir,
		"verbose":       false,
		"output":        DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables (PLOTLINE_ prefix)
	// Transform: PLOTLINE_TEMPLATES_DIR -> templates_dir
	if err := k.Load(env.Provider("PLOTLINE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PLOTLINE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.ConfigFile = configFile
	return &cfg, nil
}

// resolveProject determines the project root and the config file to load.
// An explicit config file anchors the root at its directory; otherwise the
// root is found by searching upward from the current working directory.
func resolveProject(cfgFile string) (root, configFile string, err error) {
	if cfgFile != "" {
		abs, absErr := filepath.Abs(cfgFile)
		if absErr != nil {
			return "", "", fmt.Errorf("invalid config path %q: %w", cfgFile, absErr)
		}
		if _, statErr := os.Stat(abs); statErr != nil {
			return "", "", fmt.Errorf("config file %s: %w", cfgFile, statErr)
		}
		return filepath.Dir(abs), abs, nil
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		cwd = "."
	}
	root = FindProjectRoot(cwd)
	return root, configExistsIn(root), nil
}
