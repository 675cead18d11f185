package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, wantErr := os.UserHomeDir()
	if wantErr != nil {
		assert.ErrorIs(t, err, ErrHomeDirNotFound)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAppDirs_Defaults(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvStateDir, "")

	assert.Equal(t, filepath.Join(xdg.ConfigHome, AppName), ConfigDir())
	assert.Equal(t, filepath.Join(xdg.DataHome, AppName), DataDir())
	assert.Equal(t, filepath.Join(xdg.StateHome, AppName), StateDir())
}

func TestAppDirs_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv(EnvDataDir, filepath.Join(dir, "data"))
	t.Setenv(EnvStateDir, filepath.Join(dir, "state"))

	assert.Equal(t, filepath.Join(dir, "config"), ConfigDir())
	assert.Equal(t, filepath.Join(dir, "data", DatabaseFileName), DefaultDatabasePath())
	assert.Equal(t, filepath.Join(dir, "state", StateFileName), DefaultStateFile())
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir, 0))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(DefaultDirPerm), info.Mode().Perm())

	// Idempotent.
	require.NoError(t, EnsureDir(dir, 0))
}

func TestEnsureDir_Empty(t *testing.T) {
	assert.ErrorIs(t, EnsureDir("", 0), ErrInvalidPath)
}

func TestDownloadDir(t *testing.T) {
	assert.NotEmpty(t, DownloadDir())
}
