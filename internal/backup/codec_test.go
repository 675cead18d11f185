package backup

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/timeto/internal/errors"
)

func TestEncodeName(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc",
			in:   time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
			want: "20261014T093000.000.json",
		},
		{
			name: "millis kept",
			in:   time.Date(2026, 1, 2, 3, 4, 5, 678_900_000, time.UTC),
			want: "20260102T030405.678.json",
		},
		{
			name: "local converted to utc",
			in:   time.Date(2026, 10, 14, 1, 0, 0, 0, time.FixedZone("PDT", -7*3600)),
			want: "20261014T080000.000.json",
		},
		{
			name: "year padded",
			in:   time.Date(999, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "09990101T000000.000.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeName(tt.in))
		})
	}
}

func TestDecodeName_RoundTrip(t *testing.T) {
	in := time.Date(2026, 10, 14, 23, 59, 59, 999_000_000, time.UTC)

	got, err := DecodeName(EncodeName(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(got), "got %v, want %v", got, in)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDecodeName_Rejects(t *testing.T) {
	names := []string{
		"",
		"backup.json",
		"notes.txt",
		"20261014T093000.000",
		"20261014T093000.000.txt",
		"20261014T093000.json",
		"20261014T093000.0000.json",
		"20261314T093000.000.json",
		"20261014t093000.000.json",
		"20261014T093000.000.json.tmp",
		" 20261014T093000.000.json",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeName(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDecode), "error should match ErrDecode: %v", err)

			var de *DecodeError
			if assert.True(t, errors.As(err, &de)) {
				assert.Equal(t, name, de.Name)
			}
		})
	}
}

func TestEncodeName_OrderMatchesTime(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	times := make([]time.Time, 200)
	for i := range times {
		offset := time.Duration(rng.Int64N(int64(50 * 365 * 24 * time.Hour)))
		times[i] = base.Add(offset).Truncate(time.Millisecond)
	}

	for i := 0; i+1 < len(times); i++ {
		a, b := times[i], times[i+1]
		cmpNames := strings.Compare(EncodeName(a), EncodeName(b))
		assert.Equal(t, a.Compare(b), cmpNames, "%v vs %v", a, b)
	}

	names := make([]string, len(times))
	for i, tm := range times {
		names[i] = EncodeName(tm)
	}
	slices.Sort(names)
	slices.SortFunc(times, time.Time.Compare)
	for i := range times {
		assert.Equal(t, EncodeName(times[i]), names[i])
	}
}

func TestLocalDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)

	d1 := LocalDay(time.Date(2026, 10, 14, 0, 0, 0, 0, tokyo))
	d2 := LocalDay(time.Date(2026, 10, 14, 23, 59, 59, 0, tokyo))
	d3 := LocalDay(time.Date(2026, 10, 15, 0, 0, 0, 0, tokyo))

	assert.Equal(t, d1, d2)
	assert.Equal(t, d1+1, d3)
	assert.Equal(t, "2026-10-14", d1.String())

	// 20:00 UTC on the 14th is already the 15th in Tokyo.
	utc := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, LocalDay(utc)+1, LocalDay(utc.In(tokyo)))

	assert.Equal(t, Day(0), LocalDay(time.Unix(0, 0).UTC()))
	assert.Equal(t, "never", NoDay.String())
	assert.Less(t, NoDay, Day(-1_000_000))
}
