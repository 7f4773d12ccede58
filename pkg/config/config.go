// Package config provides TOML-based configuration for hardware-report.
// A config file is optional: when none exists the defaults below apply, and
// a couple of environment variables can override individual values.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration tree.
type Config struct {
	General GeneralConfig `toml:"general"`
	Probe   ProbeConfig   `toml:"probe"`
}

// GeneralConfig controls output and logging.
type GeneralConfig struct {
	// OutputName is the report basename; the file is written to
	// ~/<OutputName>.html.
	OutputName string `toml:"output_name"`

	// OpenViewer launches the default browser after writing the report.
	OpenViewer bool `toml:"open_viewer"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// ProbeConfig bounds the data-acquisition pipeline.
type ProbeConfig struct {
	// Timeout is the hard budget for each external tool invocation.
	Timeout Duration `toml:"timeout"`

	// SampleWindow is the observation window for CPU usage percentages.
	// Per-core sampling uses half of it.
	SampleWindow Duration `toml:"sample_window"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			OutputName: "hardware_report",
			OpenViewer: true,
			LogLevel:   "info",
		},
		Probe: ProbeConfig{
			Timeout:      Duration{10 * time.Second},
			SampleWindow: Duration{1 * time.Second},
		},
	}
}

// Load reads configuration from the standard config path. Search order:
//
//  1. $XDG_CONFIG_HOME/hardware-report/config.toml
//  2. ~/.config/hardware-report/config.toml
//
// If no file exists, returns Default().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := Default()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HWREPORT_OUTPUT"); v != "" {
		cfg.General.OutputName = v
	}
	if v := os.Getenv("HWREPORT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Probe.Timeout = Duration{d}
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "hardware-report", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "hardware-report", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
