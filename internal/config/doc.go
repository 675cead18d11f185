// Package config provides configuration management for the timeto CLI.
//
// # Configuration File
//
// The configuration file is config.yaml, searched for in the current
// directory and then in $XDG_CONFIG_HOME/timeto. Every key is optional:
//
//	version: 1
//	database: ~/.local/share/timeto/timeto.db
//	state_file: ~/.local/state/timeto/state.yaml
//	backup:
//	  io_timeout: 30s
//	  schedule: "@every 1h"
//
// Environment variables override the file using the TIMETO_ prefix with
// dots replaced by underscores, e.g. TIMETO_BACKUP_IO_TIMEOUT=1m.
//
// # Loading Configuration
//
// Call [Init] once, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//
// An empty path searches the default locations and falls back to defaults.
// An explicit path must exist.
//
// # Validation
//
// [Load] runs [Validate] and fails on any problem. The backup schedule must
// parse as a standard cron expression or descriptor.
package config
