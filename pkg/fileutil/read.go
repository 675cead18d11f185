package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/timeto/internal/errors"
)

// ErrFileTooLarge indicates that a file exceeded the requested limit.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// ReadFileWithLimit reads at most limit bytes from path.
// It returns ErrFileTooLarge if the file is larger than limit.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes", path, info.Size())
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds %d bytes", path, limit)
	}

	return data, nil
}
