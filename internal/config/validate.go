package config

import (
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/thoreinstein/timeto/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidTimeout indicates a non-positive duration.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidSchedule indicates a cron expression that does not parse.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Backup.IOTimeout <= 0 {
		errs = append(errs, &FieldError{
			Field: "backup.io_timeout",
			Value: cfg.Backup.IOTimeout.String(),
			Err:   ErrInvalidTimeout,
		})
	}

	if _, err := cron.ParseStandard(cfg.Backup.Schedule); err != nil {
		errs = append(errs, &FieldError{
			Field: "backup.schedule",
			Value: cfg.Backup.Schedule,
			Err:   errors.Wrap(ErrInvalidSchedule, err.Error()),
		})
	}

	for field, path := range map[string]string{
		"database":   cfg.Database,
		"state_file": cfg.StateFile,
	} {
		if err := validatePath(path); err != nil {
			errs = append(errs, &FieldError{Field: field, Value: path, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return errors.Wrap(ErrInvalidPath, "empty")
	}

	// Null bytes are never valid in paths.
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
