package backup

import (
	"path/filepath"
	"time"

	"github.com/thoreinstein/timeto/internal/errors"
)

// Backup folder and file conventions.
const (
	// FolderName is the dedicated folder created inside the chosen location.
	// Nothing else should be stored there.
	FolderName = "timetome_autobackups"

	// Extension is appended to every encoded timestamp.
	Extension = ".json"

	// MIMEType describes the snapshot payload.
	MIMEType = "application/json"

	// DefaultName is suggested to the user when picking a location.
	DefaultName = "backup.json"

	// MaxRetained is the number of backups kept after a cleanup pass.
	MaxRetained = 10

	// DefaultIOTimeout bounds each list, write, delete and snapshot call.
	DefaultIOTimeout = 30 * time.Second
)

// Sentinel errors for backup operations. Lower layers mark their errors with
// one of these so the scheduler can classify failures with errors.Is.
var (
	// ErrConfigMissing indicates no backup location has been chosen yet.
	ErrConfigMissing = errors.New("backup location not configured")

	// ErrUserCancelled indicates the location prompt was dismissed.
	ErrUserCancelled = errors.New("location selection cancelled")

	// ErrWrite indicates the snapshot bytes could not be persisted.
	ErrWrite = errors.New("writing backup failed")

	// ErrList indicates the backup folder could not be enumerated.
	ErrList = errors.New("listing backups failed")

	// ErrDelete indicates a single backup could not be removed.
	ErrDelete = errors.New("deleting backup failed")

	// ErrDecode indicates a file name is not an encoded timestamp.
	ErrDecode = errors.New("not a backup file name")

	// ErrSnapshot indicates the data layer could not produce a snapshot.
	ErrSnapshot = errors.New("building snapshot failed")

	// ErrLocation indicates the location store could not be read or written.
	ErrLocation = errors.New("backup location store failed")

	// ErrLock indicates a run could not wait for another run to finish.
	ErrLock = errors.New("acquiring backup lock failed")
)

// Location is an opaque reference to the user-chosen storage destination.
// The filesystem provider treats it as an absolute directory.
type Location string

// FolderPath returns the backup folder inside loc.
func FolderPath(loc Location) string {
	return filepath.Join(string(loc), FolderName)
}

// Entry is one item reported by a Provider listing.
type Entry struct {
	// ID is an opaque handle accepted by Provider.Delete.
	ID string
	// DisplayName is the file name, e.g. "20261014T093000.000.json".
	DisplayName string
	// RelativePath is the folder holding the file as the provider sees it.
	RelativePath string
}

// Record is a listed backup file. Records only come from a Provider listing
// or a successful write; they are never built from a name alone.
type Record struct {
	ID         string
	Name       string
	FolderPath string
}

// Time decodes the record name. ok is false for foreign names.
func (r Record) Time() (t time.Time, ok bool) {
	t, err := DecodeName(r.Name)
	return t, err == nil
}

// State is the scheduler's position in a run.
type State int

const (
	StateIdle State = iota
	StateCheckingLastBackup
	StateAwaitingLocation
	StateExporting
	StateCleaningUp
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCheckingLastBackup:
		return "checking_last_backup"
	case StateAwaitingLocation:
		return "awaiting_location"
	case StateExporting:
		return "exporting"
	case StateCleaningUp:
		return "cleaning_up"
	default:
		return "unknown"
	}
}

// Outcome summarizes a scheduler run.
type Outcome string

const (
	// OutcomeUpToDate means a backup already exists for today.
	OutcomeUpToDate Outcome = "up_to_date"
	// OutcomeBackedUp means a new backup was written.
	OutcomeBackedUp Outcome = "backed_up"
	// OutcomeCancelled means the location prompt was dismissed.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeNotConfigured means no location is stored and prompting is off.
	OutcomeNotConfigured Outcome = "not_configured"
	// OutcomeFailed means the run stopped before a backup was written.
	OutcomeFailed Outcome = "failed"
)

// Result describes one DailyBackupIfNeeded call.
type Result struct {
	RunID   string
	Outcome Outcome

	// LastBackupDay is the newest backup day seen before the run, if any.
	LastBackupDay    Day
	HasLastBackupDay bool

	// Backup is set when a new file was written.
	Backup *Record

	// Cleanup is set when a cleanup pass ran.
	Cleanup *CleanupReport

	// Failures lists everything sent to the Reporter during the run.
	Failures []Failure

	// Waited is true when the call queued behind another run before
	// checking for today's backup.
	Waited bool
}

// CleanupReport describes a retention pass.
type CleanupReport struct {
	Kept    []Record
	Deleted []Record
	Failed  []DeleteFailure
}

// DeleteFailure pairs a record with the error that prevented its removal.
type DeleteFailure struct {
	Record Record
	Err    error
}
