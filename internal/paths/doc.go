// Package paths resolves the directories timeto reads and writes.
//
// The package wraps github.com/adrg/xdg so config, data and state land in
// the right place on every OS. Each directory can be overridden through an
// environment variable, which tests use to stay inside t.TempDir():
//
//	| Directory | Default (Linux)        | Override          |
//	|-----------|------------------------|-------------------|
//	| config    | ~/.config/timeto       | TIMETO_CONFIG_DIR |
//	| data      | ~/.local/share/timeto  | TIMETO_DATA_DIR   |
//	| state     | ~/.local/state/timeto  | TIMETO_STATE_DIR  |
package paths
