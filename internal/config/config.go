// Package config provides configuration management for timeto using Viper.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/paths"
)

// EnvPrefix is prepended to environment overrides, e.g. TIMETO_BACKUP_SCHEDULE.
const EnvPrefix = "TIMETO"

// Config represents the top-level configuration structure.
type Config struct {
	Version   int          `mapstructure:"version" yaml:"version"`
	Database  string       `mapstructure:"database" yaml:"database"`
	StateFile string       `mapstructure:"state_file" yaml:"state_file"`
	Backup    BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// BackupConfig tunes the automatic backup.
type BackupConfig struct {
	// IOTimeout bounds each list, write, delete and snapshot call.
	IOTimeout time.Duration `mapstructure:"io_timeout" yaml:"io_timeout"`
	// Schedule is the cron expression `timeto backup watch` checks on.
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("database", paths.DefaultDatabasePath())
	viper.SetDefault("state_file", paths.DefaultStateFile())
	viper.SetDefault("backup.io_timeout", backup.DefaultIOTimeout)
	viper.SetDefault("backup.schedule", backup.DefaultSchedule)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
// The result is validated; all problems are joined into one error.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Version:   1,
		Database:  paths.DefaultDatabasePath(),
		StateFile: paths.DefaultStateFile(),
		Backup: BackupConfig{
			IOTimeout: backup.DefaultIOTimeout,
			Schedule:  backup.DefaultSchedule,
		},
	}
}

// ConfigFileUsed returns the file Load read, or "" when defaults were used.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
