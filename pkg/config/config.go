// Package config loads ihook settings from defaults, an optional config
// file, IHOOK_ environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"slices"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/actions"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/probe"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "IHOOK_"
	// DefaultFile is read when present and no --config is given.
	DefaultFile = "/etc/ihook/config.yaml"
	// DefaultStorePath is where the host exports its storage by default.
	DefaultStorePath = "/run/ihook/globalstorage.yaml"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the complete ihook configuration.
type Config struct {
	Store   string          `koanf:"store"`
	Log     LogConfig       `koanf:"log"`
	Probe   probe.Options   `koanf:"probe"`
	Edition edition.Options `koanf:"edition"`
	Actions actions.Options `koanf:"actions"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: DefaultStorePath,
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
		Probe:   probe.DefaultOptions(),
		Edition: edition.DefaultOptions(),
		Actions: actions.DefaultOptions(),
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Store == "" {
		return fmt.Errorf("store path is required")
	}
	if !slices.Contains([]string{FormatConsole, FormatJSON}, c.Log.Format) {
		return fmt.Errorf("invalid log format %q (expected console or json)", c.Log.Format)
	}
	return nil
}
