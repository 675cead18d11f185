package backup

import (
	"strings"
	"time"

	"github.com/thoreinstein/timeto/internal/errors"
)

// nameLayout renders fixed-width, zero-padded fields so that byte order
// equals chronological order. Names are always encoded in UTC.
const nameLayout = "20060102T150405.000"

// EncodeName returns the backup file name for t.
// Names sort in the same order as their instants at millisecond resolution
// for years 0000 through 9999.
func EncodeName(t time.Time) string {
	return t.UTC().Format(nameLayout) + Extension
}

// DecodeError reports a file name that is not an encoded timestamp.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return ErrDecode.Error() + ": " + e.Name
	}
	return ErrDecode.Error() + ": " + e.Name + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// DecodeName parses a name produced by EncodeName back into a UTC instant.
func DecodeName(name string) (time.Time, error) {
	stem, ok := strings.CutSuffix(name, Extension)
	if !ok || len(stem) != len(nameLayout) {
		return time.Time{}, &DecodeError{Name: name}
	}

	t, err := time.ParseInLocation(nameLayout, stem, time.UTC)
	if err != nil {
		return time.Time{}, &DecodeError{Name: name, Err: errors.Wrap(err, "parsing timestamp")}
	}
	if EncodeName(t) != name {
		return time.Time{}, &DecodeError{Name: name}
	}

	return t, nil
}

// Day is a calendar day counted from 1970-01-01 in some time zone.
type Day int64

// NoDay is older than any real day. It stands in for "never backed up".
const NoDay Day = -1 << 63

// LocalDay returns the calendar day of t in t's own location.
func LocalDay(t time.Time) Day {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Day(midnight.Unix() / 86400)
}

// Time returns midnight UTC of d, for display.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

func (d Day) String() string {
	if d == NoDay {
		return "never"
	}
	return d.Time().Format(time.DateOnly)
}
