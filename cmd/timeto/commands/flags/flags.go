// Package flags provides shared state for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages.
package flags

import "github.com/thoreinstein/timeto/internal/config"

var cfg *config.Config

// GetConfig returns the loaded configuration, or defaults if none was loaded.
func GetConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// SetConfig sets the configuration used by subcommands.
// The root command calls this after loading; tests use it to point
// commands at temporary paths.
func SetConfig(c *config.Config) {
	cfg = c
}
