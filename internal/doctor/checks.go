package doctor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/config"
	"github.com/thoreinstein/timeto/internal/errors"
)

// maxStatePerm is the widest acceptable permission for the state file.
const maxStatePerm os.FileMode = 0o600

// sqliteHeader starts every SQLite 3 database file.
var sqliteHeader = []byte("SQLite format 3\x00")

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg  *config.Config
	file string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check for cfg, read from file ("" for defaults).
func NewConfigCheck(cfg *config.Config, file string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, file: file}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run validates the configuration fields.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	source := c.file
	if source == "" {
		source = "defaults"
	}

	if errs := config.Validate(c.cfg); len(errs) > 0 {
		res := newResult(c, SeverityError, fmt.Sprintf("%d invalid setting(s): %v", len(errs), errs[0]))
		return res.withDetail("source", source).withHint("Fix the listed keys in " + source)
	}
	return newResult(c, SeverityPass, "configuration is valid").withDetail("source", source)
}

// DatabaseCheck confirms the time-tracking database exists and is SQLite.
type DatabaseCheck struct {
	path string
}

var _ Check = (*DatabaseCheck)(nil)

// NewDatabaseCheck creates a check for the database at path.
func NewDatabaseCheck(path string) *DatabaseCheck {
	return &DatabaseCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *DatabaseCheck) Name() string { return "database" }

// Category returns the grouping for this check.
func (c *DatabaseCheck) Category() string { return "data" }

// Run inspects the database file header without opening a connection.
func (c *DatabaseCheck) Run(_ context.Context) *CheckResult {
	info, err := os.Stat(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return newResult(c, SeverityInfo, "database does not exist yet; backups will hold an empty snapshot").
			withDetail("path", c.path)
	}
	if err != nil {
		return newResult(c, SeverityError, fmt.Sprintf("cannot stat database: %v", err)).withDetail("path", c.path)
	}
	if !info.Mode().IsRegular() {
		return newResult(c, SeverityError, "database path is not a regular file").withDetail("path", c.path)
	}

	f, err := os.Open(c.path)
	if err != nil {
		return newResult(c, SeverityError, "database is not readable").
			withDetail("path", c.path).
			withHint("chmod 600 " + c.path)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err != nil && info.Size() > 0 {
		return newResult(c, SeverityError, "database header is truncated").withDetail("path", c.path)
	}
	if info.Size() > 0 && !bytes.Equal(header, sqliteHeader) {
		return newResult(c, SeverityError, "file is not a SQLite database").withDetail("path", c.path)
	}

	return newResult(c, SeverityPass, "database is readable").
		withDetail("path", c.path).
		withDetail("size_bytes", info.Size())
}

// StateFileCheck validates the file holding the backup location.
type StateFileCheck struct {
	store *backup.FileLocationStore
}

var _ Check = (*StateFileCheck)(nil)

// NewStateFileCheck creates a check for the store's state file.
func NewStateFileCheck(store *backup.FileLocationStore) *StateFileCheck {
	return &StateFileCheck{store: store}
}

// Name returns the unique identifier for this check.
func (c *StateFileCheck) Name() string { return "state-file" }

// Category returns the grouping for this check.
func (c *StateFileCheck) Category() string { return "config" }

// Run checks that the state file parses and is private to the owner.
func (c *StateFileCheck) Run(ctx context.Context) *CheckResult {
	path := c.store.Path()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newResult(c, SeverityInfo, "no state file yet; it is written when a location is chosen").
			withDetail("path", path)
	}
	if err != nil {
		return newResult(c, SeverityError, fmt.Sprintf("cannot stat state file: %v", err)).withDetail("path", path)
	}

	if _, _, err := c.store.Get(ctx); err != nil {
		return newResult(c, SeverityError, fmt.Sprintf("state file is unreadable: %v", err)).
			withDetail("path", path).
			withHint("Remove " + path + " and set the location again")
	}

	// Unix permissions don't apply on Windows
	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm&^maxStatePerm != 0 {
			return newResult(c, SeverityWarning, fmt.Sprintf("state file permissions %04o are wider than %04o", perm, maxStatePerm)).
				withDetail("path", path).
				withHint(fmt.Sprintf("chmod %o %s", maxStatePerm, path))
		}
	}

	return newResult(c, SeverityPass, "state file is valid").withDetail("path", path)
}

// LocationCheck confirms the backup location is set, reachable and writable.
type LocationCheck struct {
	store backup.LocationStore
}

var _ Check = (*LocationCheck)(nil)

// NewLocationCheck creates a check for the location held by store.
func NewLocationCheck(store backup.LocationStore) *LocationCheck {
	return &LocationCheck{store: store}
}

// Name returns the unique identifier for this check.
func (c *LocationCheck) Name() string { return "location" }

// Category returns the grouping for this check.
func (c *LocationCheck) Category() string { return "backup" }

// Run checks the location and its backup folder.
func (c *LocationCheck) Run(ctx context.Context) *CheckResult {
	loc, ok, err := c.store.Get(ctx)
	if err != nil {
		return newResult(c, SeverityError, fmt.Sprintf("cannot read location: %v", err))
	}
	if !ok {
		return newResult(c, SeverityWarning, "no backup location set; the next run will ask for one").
			withHint("timeto backup location --set <dir>")
	}

	dir := string(loc)
	folder := backup.FolderPath(loc)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return newResult(c, SeverityError, "backup location is not reachable").
			withDetail("location", dir).
			withHint("Mount the drive or choose another location with 'timeto backup location --set <dir>'")
	}

	testDir := folder
	if _, err := os.Stat(folder); errors.Is(err, fs.ErrNotExist) {
		// The folder is created on the first backup, so test its parent
		testDir = dir
	}
	if err := checkWritable(testDir); err != nil {
		return newResult(c, SeverityError, "backup folder is not writable").
			withDetail("folder", folder).
			withDetail("error", err.Error()).
			withHint("Check permissions on " + testDir)
	}

	return newResult(c, SeverityPass, "backup location is writable").
		withDetail("location", dir).
		withDetail("folder", folder)
}

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".timeto-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// Lister is the part of backup.Retention FreshnessCheck reads.
type Lister interface {
	ListDescending(ctx context.Context) ([]backup.Record, error)
}

// FreshnessCheck reports how old the newest backup is and whether more
// backups are stored than retention keeps.
type FreshnessCheck struct {
	lister Lister
	clock  backup.Clock
}

var _ Check = (*FreshnessCheck)(nil)

// NewFreshnessCheck creates a check over the backups lister returns.
func NewFreshnessCheck(lister Lister, clock backup.Clock) *FreshnessCheck {
	if clock == nil {
		clock = backup.SystemClock
	}
	return &FreshnessCheck{lister: lister, clock: clock}
}

// Name returns the unique identifier for this check.
func (c *FreshnessCheck) Name() string { return "freshness" }

// Category returns the grouping for this check.
func (c *FreshnessCheck) Category() string { return "backup" }

// Run compares the newest backup with today.
func (c *FreshnessCheck) Run(ctx context.Context) *CheckResult {
	records, err := c.lister.ListDescending(ctx)
	if err != nil {
		return newResult(c, SeverityError, fmt.Sprintf("cannot list backups: %v", err))
	}
	if len(records) == 0 {
		return newResult(c, SeverityWarning, "no backups found").
			withHint("timeto backup run")
	}

	newest, _ := records[0].Time()
	now := c.clock.Now()
	age := backup.LocalDay(now) - backup.LocalDay(newest.In(now.Location()))

	var res *CheckResult
	switch {
	case age <= 0:
		res = newResult(c, SeverityPass, "today's backup exists")
	case age == 1:
		res = newResult(c, SeverityInfo, "newest backup is from yesterday")
	default:
		res = newResult(c, SeverityWarning, fmt.Sprintf("newest backup is %d days old", age)).
			withHint("timeto backup run")
	}
	res.withDetail("newest", records[0].Name).withDetail("count", len(records))

	if len(records) > backup.MaxRetained && res.Status < SeverityWarning {
		res.Status = SeverityWarning
		res.Message = fmt.Sprintf("%s; %d backups stored, %d kept by retention",
			res.Message, len(records), backup.MaxRetained)
		res.FixHint = "timeto backup prune"
	}
	return res
}

// DefaultChecks returns the checks `timeto doctor` runs, in order.
func DefaultChecks(cfg *config.Config, file string, store *backup.FileLocationStore, lister Lister, clock backup.Clock) []Check {
	return []Check{
		NewConfigCheck(cfg, file),
		NewDatabaseCheck(filepath.Clean(cfg.Database)),
		NewStateFileCheck(store),
		NewLocationCheck(store),
		NewFreshnessCheck(lister, clock),
	}
}
