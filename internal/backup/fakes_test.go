package backup_test

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
)

// memProvider keeps files in memory keyed by folder/name.
type memProvider struct {
	mu      sync.Mutex
	files   map[string]memFile
	writes  int
	deletes []string

	listErr   error
	writeErr  error
	deleteErr map[string]error

	// writeHook runs inside Write before the file is stored.
	writeHook func()
}

type memFile struct {
	folder string
	name   string
	data   []byte
}

func newMemProvider() *memProvider {
	return &memProvider{
		files:     map[string]memFile{},
		deleteErr: map[string]error{},
	}
}

func (p *memProvider) put(folder, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[filepath.Join(folder, name)] = memFile{folder: folder, name: name}
}

func (p *memProvider) List(_ context.Context, folder string) ([]backup.Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.listErr != nil {
		return nil, p.listErr
	}
	var out []backup.Entry
	for id, f := range p.files {
		if f.folder != folder {
			continue
		}
		out = append(out, backup.Entry{ID: id, DisplayName: f.name, RelativePath: f.folder})
	}
	// Map order is random, so callers must sort.
	return out, nil
}

func (p *memProvider) Write(_ context.Context, folder, name string, data []byte) (backup.Entry, error) {
	if p.writeHook != nil {
		p.writeHook()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writeErr != nil {
		return backup.Entry{}, p.writeErr
	}
	id := filepath.Join(folder, name)
	p.files[id] = memFile{folder: folder, name: name, data: data}
	p.writes++
	return backup.Entry{ID: id, DisplayName: name, RelativePath: folder}, nil
}

func (p *memProvider) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.deleteErr[id]; err != nil {
		return err
	}
	if _, ok := p.files[id]; !ok {
		return errors.Newf("no such file %s", id)
	}
	delete(p.files, id)
	p.deletes = append(p.deletes, id)
	return nil
}

func (p *memProvider) names(folder string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []string
	for _, f := range p.files {
		if f.folder == folder {
			out = append(out, f.name)
		}
	}
	slices.Sort(out)
	return out
}

func (p *memProvider) writeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// fixedClock returns a settable instant.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *fixedClock { return &fixedClock{now: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// recorder collects reported failures.
type recorder struct {
	mu       sync.Mutex
	failures []backup.Failure
}

func (r *recorder) Report(_ context.Context, f backup.Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

func (r *recorder) kinds() []backup.FailureKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]backup.FailureKind, len(r.failures))
	for i, f := range r.failures {
		out[i] = f.Kind
	}
	return out
}

func staticSnapshot(data string) backup.Snapshotter {
	return backup.SnapshotFunc(func(context.Context) ([]byte, error) {
		return []byte(data), nil
	})
}

// seedDays writes one backup at noon UTC for each of n consecutive days
// starting at start, and returns their names oldest first.
func seedDays(p *memProvider, loc backup.Location, start time.Time, n int) []string {
	names := make([]string, n)
	for i := range n {
		names[i] = backup.EncodeName(start.AddDate(0, 0, i))
		p.put(backup.FolderPath(loc), names[i])
	}
	return names
}
