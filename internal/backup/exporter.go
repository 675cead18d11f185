package backup

import (
	"context"
	"time"

	"github.com/thoreinstein/timeto/internal/errors"
)

// Exporter writes snapshots of user data into the backup folder.
type Exporter struct {
	provider  Provider
	locations LocationStore
	prompter  Prompter
	snapshots Snapshotter
	opts      options
}

// NewExporter returns an Exporter. prompter may be nil, in which case a
// missing location fails with ErrConfigMissing instead of prompting.
func NewExporter(p Provider, locs LocationStore, prompter Prompter, snap Snapshotter, opts ...Option) *Exporter {
	return &Exporter{
		provider:  p,
		locations: locs,
		prompter:  prompter,
		snapshots: snap,
		opts:      newOptions(opts),
	}
}

// NewBackup writes one snapshot named after the current time.
// When no location is stored the user is asked exactly once; the choice is
// persisted before anything is written. A dismissed prompt returns
// ErrUserCancelled and leaves storage untouched.
func (e *Exporter) NewBackup(ctx context.Context) (Record, error) {
	return e.newBackup(ctx, nil)
}

// newBackup reports StateAwaitingLocation and StateExporting to observe.
func (e *Exporter) newBackup(ctx context.Context, observe func(State)) (Record, error) {
	if observe == nil {
		observe = func(State) {}
	}

	loc, err := e.resolveLocation(ctx, observe)
	if err != nil {
		return Record{}, err
	}

	observe(StateExporting)
	start := time.Now()

	data, err := e.snapshot(ctx)
	if err != nil {
		return Record{}, err
	}

	now := e.opts.clock.Now()
	name := EncodeName(now)
	folder := FolderPath(loc)

	ioCtx, cancel := e.opts.withIO(ctx)
	defer cancel()

	entry, err := e.provider.Write(ioCtx, folder, name, data)
	if err != nil {
		return Record{}, errors.Mark(errors.Wrapf(err, "writing %s", name), ErrWrite)
	}

	e.opts.metrics.observeExport(now, time.Since(start))
	e.opts.log(ctx).Info("backup written", "name", entry.DisplayName, "folder", folder, "bytes", len(data))

	return Record{
		ID:         entry.ID,
		Name:       entry.DisplayName,
		FolderPath: entry.RelativePath,
	}, nil
}

func (e *Exporter) resolveLocation(ctx context.Context, observe func(State)) (Location, error) {
	loc, ok, err := e.locations.Get(ctx)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "reading backup location"), ErrLocation)
	}
	if ok {
		return loc, nil
	}

	if e.prompter == nil {
		return "", errors.Wrap(ErrConfigMissing, "no prompter available")
	}

	observe(StateAwaitingLocation)
	loc, err = e.prompter.PromptForLocation(ctx, DefaultName, MIMEType)
	switch {
	case errors.Is(err, ErrUserCancelled):
		return "", err
	case err != nil && ctx.Err() != nil:
		return "", errors.Mark(errors.Wrap(err, "waiting for backup location"), ErrUserCancelled)
	case err != nil:
		return "", errors.Mark(errors.Wrap(err, "choosing backup location"), ErrLocation)
	case loc == "":
		return "", errors.Wrap(ErrUserCancelled, "no location chosen")
	}

	if err := e.locations.Set(ctx, loc); err != nil {
		return "", errors.Mark(errors.Wrap(err, "saving backup location"), ErrLocation)
	}
	e.opts.log(ctx).Info("backup location saved", "location", string(loc))
	return loc, nil
}

func (e *Exporter) snapshot(ctx context.Context) ([]byte, error) {
	ioCtx, cancel := e.opts.withIO(ctx)
	defer cancel()

	data, err := e.snapshots.Snapshot(ioCtx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "taking snapshot"), ErrSnapshot)
	}
	return data, nil
}
