package backup

import (
	"context"
	"slices"
	"strings"

	"github.com/thoreinstein/timeto/internal/errors"
)

// Retention lists backups in the active location and bounds how many are kept.
type Retention struct {
	provider  Provider
	locations LocationStore
	opts      options
}

// NewRetention returns a Retention reading from p in the location held by locs.
func NewRetention(p Provider, locs LocationStore, opts ...Option) *Retention {
	return &Retention{
		provider:  p,
		locations: locs,
		opts:      newOptions(opts),
	}
}

// ListDescending returns the backups in the active folder, newest first.
// Entries outside the backup folder and names that do not decode are
// skipped. No location yields an empty list.
func (r *Retention) ListDescending(ctx context.Context) ([]Record, error) {
	loc, ok, err := r.locations.Get(ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading backup location"), ErrList)
	}
	if !ok {
		r.opts.log(ctx).Debug("no backup location configured")
		return nil, nil
	}

	folder := FolderPath(loc)
	ioCtx, cancel := r.opts.withIO(ctx)
	defer cancel()

	entries, err := r.provider.List(ioCtx, folder)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "listing %s", folder), ErrList)
	}

	logger := r.opts.log(ctx)
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		if !strings.Contains(e.RelativePath, FolderName) {
			continue
		}
		if _, err := DecodeName(e.DisplayName); err != nil {
			logger.Debug("skipping foreign file", "name", e.DisplayName, "error", err)
			continue
		}
		records = append(records, Record{
			ID:         e.ID,
			Name:       e.DisplayName,
			FolderPath: e.RelativePath,
		})
	}

	slices.SortFunc(records, func(a, b Record) int {
		return strings.Compare(b.Name, a.Name)
	})
	return records, nil
}

// MostRecentDay returns the calendar day, in the clock's time zone, of the
// newest backup. ok is false when there are none.
func (r *Retention) MostRecentDay(ctx context.Context) (day Day, ok bool, err error) {
	records, err := r.ListDescending(ctx)
	if err != nil {
		return NoDay, false, err
	}
	if len(records) == 0 {
		return NoDay, false, nil
	}

	t, err := DecodeName(records[0].Name)
	if err != nil {
		return NoDay, false, err
	}
	return LocalDay(t.In(r.opts.clock.Now().Location())), true, nil
}

// Cleanup keeps the MaxRetained newest backups and deletes the rest one at a
// time. A failed delete is recorded and the pass continues. Only a listing
// failure or a cancelled context returns an error.
func (r *Retention) Cleanup(ctx context.Context) (CleanupReport, error) {
	records, err := r.ListDescending(ctx)
	if err != nil {
		return CleanupReport{}, err
	}

	var report CleanupReport
	if len(records) <= MaxRetained {
		report.Kept = records
		return report, nil
	}
	report.Kept = records[:MaxRetained]

	logger := r.opts.log(ctx)
	for _, rec := range records[MaxRetained:] {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "cleanup interrupted")
		}

		if err := r.delete(ctx, rec); err != nil {
			logger.Warn("could not delete old backup", "name", rec.Name, "error", err)
			report.Failed = append(report.Failed, DeleteFailure{Record: rec, Err: err})
			continue
		}
		logger.Debug("deleted old backup", "name", rec.Name)
		report.Deleted = append(report.Deleted, rec)
	}
	return report, nil
}

func (r *Retention) delete(ctx context.Context, rec Record) error {
	ioCtx, cancel := r.opts.withIO(ctx)
	defer cancel()

	if err := r.provider.Delete(ioCtx, rec.ID); err != nil {
		return errors.Mark(errors.Wrapf(err, "deleting %s", rec.Name), ErrDelete)
	}
	return nil
}
