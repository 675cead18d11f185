// Package commands implements the CLI commands for timeto.
package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/cmd"
	"github.com/thoreinstein/timeto/cmd/timeto/commands/backup"
	"github.com/thoreinstein/timeto/cmd/timeto/commands/flags"
	"github.com/thoreinstein/timeto/internal/config"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/logging"
	"github.com/thoreinstein/timeto/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/timeto/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("timeto version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(configPath)
	configLoadErr = err
	flags.SetConfig(cfg)
}

var rootCmd = &cobra.Command{
	Use:   "timeto",
	Short: "Personal time tracking with automatic daily backups",
	Long: `timeto tracks where your time goes and keeps its database safe with a
daily automatic backup into a folder you choose once.

Backups are JSON snapshots written to <location>/timetome_autobackups.
Only the 10 most recent are kept.`,
	Example: `  # Back up now if today's backup is missing
  timeto backup run

  # Show stored backups
  timeto backup list

  # Keep checking in the background
  timeto backup watch

  See Also: timeto backup location, timeto version`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("TIMETO_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		if err := paths.EnsureDir(filepath.Dir(logFile), paths.DefaultDirPerm); err != nil {
			return errors.NewUserError(err, "failed to create log directory")
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load errors for commands that need config.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if used := config.ConfigFileUsed(); used != "" {
		logging.FromContext(cmd.Context()).Debug("config loaded", "path", used)
	}
	return nil
}

// ExecuteContext runs the root command with ctx, so a signal-aware context
// reaches long-running subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
