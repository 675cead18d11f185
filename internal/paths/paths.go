package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-application subdirectory under each XDG base dir.
const AppName = "timeto"

// Environment overrides for the application directories.
const (
	EnvConfigDir = "TIMETO_CONFIG_DIR"
	EnvDataDir   = "TIMETO_DATA_DIR"
	EnvStateDir  = "TIMETO_STATE_DIR"
)

// Default file names inside the application directories.
const (
	ConfigFileName   = "config.yaml"
	DatabaseFileName = "timeto.db"
	StateFileName    = "state.yaml"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return ErrInvalidPath
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ConfigDir returns the directory holding config.yaml.
// On Linux: ~/.config/timeto
// On macOS: ~/Library/Application Support/timeto
func ConfigDir() string {
	return appDir(EnvConfigDir, xdg.ConfigHome)
}

// DataDir returns the directory holding the time-tracking database.
// On Linux: ~/.local/share/timeto
func DataDir() string {
	return appDir(EnvDataDir, xdg.DataHome)
}

// StateDir returns the directory holding persisted runtime state such as
// the chosen backup location.
// On Linux: ~/.local/state/timeto
func StateDir() string {
	return appDir(EnvStateDir, xdg.StateHome)
}

// DownloadDir returns the user's downloads folder, the default suggestion
// when choosing a backup location.
func DownloadDir() string {
	if dir := xdg.UserDirs.Download; dir != "" {
		return dir
	}
	home, err := ResolveHome()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Downloads")
}

// DocumentsDir returns the user's documents folder.
func DocumentsDir() string {
	return xdg.UserDirs.Documents
}

// DefaultDatabasePath returns <DataDir>/timeto.db.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), DatabaseFileName)
}

// DefaultStateFile returns <StateDir>/state.yaml.
func DefaultStateFile() string {
	return filepath.Join(StateDir(), StateFileName)
}

func appDir(env, base string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(base, AppName)
}
