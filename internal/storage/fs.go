// Package storage provides backup.Provider implementations.
package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/paths"
	"github.com/thoreinstein/timeto/pkg/fileutil"
)

// ErrUnsafePath is returned for folders, names or ids that could reach
// outside a backup folder.
var ErrUnsafePath = errors.New("unsafe backup path")

// ErrUnreachable is returned when the location holding the backup folder
// does not exist, typically an unmounted drive.
var ErrUnreachable = errors.New("backup location unreachable")

// FilePerm is the mode of written backup files.
const FilePerm os.FileMode = 0o600

// FS stores backups as plain files on the local file system.
// Entry IDs are absolute file paths.
type FS struct{}

// NewFS returns a file system provider.
func NewFS() *FS { return &FS{} }

var _ backup.Provider = (*FS)(nil)

// List returns the regular files directly inside folder. A missing folder
// yields no entries as long as its parent exists.
func (f *FS) List(ctx context.Context, folder string) ([]backup.Entry, error) {
	dir, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, perr := os.Stat(filepath.Dir(dir)); perr != nil {
				return nil, errors.Mark(errors.Wrapf(perr, "stat %s", filepath.Dir(dir)), ErrUnreachable)
			}
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	out := make([]backup.Entry, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !item.Type().IsRegular() || strings.HasPrefix(item.Name(), ".") {
			continue
		}
		out = append(out, backup.Entry{
			ID:           filepath.Join(dir, item.Name()),
			DisplayName:  item.Name(),
			RelativePath: dir,
		})
	}
	return out, nil
}

// Write atomically stores data as folder/name with owner-only permissions,
// creating folder if needed.
func (f *FS) Write(ctx context.Context, folder, name string, data []byte) (backup.Entry, error) {
	dir, err := cleanFolder(folder)
	if err != nil {
		return backup.Entry{}, err
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return backup.Entry{}, errors.Wrapf(ErrUnsafePath, "file name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return backup.Entry{}, err
	}

	if _, err := os.Stat(filepath.Dir(dir)); err != nil {
		return backup.Entry{}, errors.Mark(errors.Wrapf(err, "stat %s", filepath.Dir(dir)), ErrUnreachable)
	}
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return backup.Entry{}, err
	}

	path := filepath.Join(dir, name)
	if err := fileutil.AtomicWriteFile(path, data, FilePerm); err != nil {
		return backup.Entry{}, errors.Wrapf(err, "writing %s", path)
	}

	return backup.Entry{ID: path, DisplayName: name, RelativePath: dir}, nil
}

// Delete removes the regular file at id. Only files directly inside a
// backup folder can be removed.
func (f *FS) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Clean(id)
	if !filepath.IsAbs(path) || filepath.Base(filepath.Dir(path)) != backup.FolderName {
		return errors.Wrapf(ErrUnsafePath, "delete %q", id)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Wrapf(ErrUnsafePath, "%s is not a regular file", path)
	}

	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	return nil
}

func cleanFolder(folder string) (string, error) {
	if folder == "" {
		return "", errors.Wrap(ErrUnsafePath, "empty folder")
	}
	dir := filepath.Clean(folder)
	if !filepath.IsAbs(dir) {
		return "", errors.Wrapf(ErrUnsafePath, "folder %q is not absolute", folder)
	}
	return dir, nil
}
