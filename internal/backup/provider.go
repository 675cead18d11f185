package backup

import (
	"context"
	"time"
)

// Provider stores backup files on some durable medium.
// Implementations must not leak platform types through these methods.
type Provider interface {
	// List returns every file the provider can see in folder.
	// A missing folder yields an empty result; an unreachable medium is an error.
	List(ctx context.Context, folder string) ([]Entry, error)

	// Write stores data as name inside folder, creating folder if needed.
	Write(ctx context.Context, folder, name string, data []byte) (Entry, error)

	// Delete removes the file identified by id.
	Delete(ctx context.Context, id string) error
}

// Prompter asks the user where backups should live. It is the only call
// that waits on a human. Implementations return ErrUserCancelled when the
// user dismisses the prompt.
type Prompter interface {
	PromptForLocation(ctx context.Context, defaultName, mimeType string) (Location, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, defaultName, mimeType string) (Location, error)

// PromptForLocation calls f.
func (f PrompterFunc) PromptForLocation(ctx context.Context, defaultName, mimeType string) (Location, error) {
	return f(ctx, defaultName, mimeType)
}

// Snapshotter produces the serialized user data to back up.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

// SnapshotFunc adapts a function to Snapshotter.
type SnapshotFunc func(ctx context.Context) ([]byte, error)

// Snapshot calls f.
func (f SnapshotFunc) Snapshot(ctx context.Context) ([]byte, error) { return f(ctx) }

// Clock supplies wall-clock time. Day boundaries follow the location of the
// times it returns.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns time.Now in the local time zone.
var SystemClock Clock = ClockFunc(time.Now)
