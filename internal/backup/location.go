package backup

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/paths"
	"github.com/thoreinstein/timeto/pkg/fileutil"
)

// LocationKey is the state file key holding the chosen location.
const LocationKey = "backup_location"

// maxStateFileSize bounds how much of the state file is read.
const maxStateFileSize = 64 * 1024

// LocationStore persists the single active backup location.
type LocationStore interface {
	// Get returns the stored location. ok is false when none has been chosen.
	Get(ctx context.Context) (loc Location, ok bool, err error)
	// Set replaces the stored location. The change survives restarts.
	Set(ctx context.Context, loc Location) error
}

// FileLocationStore keeps the location in a YAML state file.
// Other keys in the file are preserved on Set.
type FileLocationStore struct {
	path string
	mu   sync.Mutex
}

// NewFileLocationStore returns a store backed by the YAML file at path.
// The file is created on the first Set.
func NewFileLocationStore(path string) *FileLocationStore {
	return &FileLocationStore{path: path}
}

// Path returns the state file path.
func (s *FileLocationStore) Path() string { return s.path }

// Get reads the location. A missing file or key is not an error.
func (s *FileLocationStore) Get(_ context.Context) (Location, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return "", false, err
	}

	raw, _ := state[LocationKey].(string)
	if raw == "" {
		return "", false, nil
	}
	return Location(raw), true, nil
}

// Set writes the location atomically with owner-only permissions.
func (s *FileLocationStore) Set(_ context.Context, loc Location) error {
	if loc == "" {
		return errors.Mark(errors.New("backup location is empty"), ErrLocation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return err
	}
	state[LocationKey] = string(loc)

	if err := paths.EnsureDir(filepath.Dir(s.path), paths.DefaultDirPerm); err != nil {
		return errors.Mark(err, ErrLocation)
	}
	if err := fileutil.AtomicWriteYAML(s.path, state, 0o600); err != nil {
		return errors.Mark(errors.Wrapf(err, "writing %s", s.path), ErrLocation)
	}
	return nil
}

func (s *FileLocationStore) read() (map[string]any, error) {
	state := map[string]any{}

	data, err := fileutil.ReadFileWithLimit(s.path, maxStateFileSize)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", s.path), ErrLocation)
	}

	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parsing %s", s.path), ErrLocation)
	}
	if state == nil {
		state = map[string]any{}
	}
	return state, nil
}

// MemoryLocationStore keeps the location in memory. Hosts that persist the
// location elsewhere can seed it; tests use it as a fake.
type MemoryLocationStore struct {
	mu  sync.Mutex
	loc Location
	set int
}

// NewMemoryLocationStore returns a store holding loc ("" for unset).
func NewMemoryLocationStore(loc Location) *MemoryLocationStore {
	return &MemoryLocationStore{loc: loc}
}

// Get returns the held location.
func (s *MemoryLocationStore) Get(context.Context) (Location, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc, s.loc != "", nil
}

// Set replaces the held location.
func (s *MemoryLocationStore) Set(_ context.Context, loc Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = loc
	s.set++
	return nil
}

// SetCount returns how many times Set was called.
func (s *MemoryLocationStore) SetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}
