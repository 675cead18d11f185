package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/timeto/internal/backup"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "timeto.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeto.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	_, err = s.DB().Exec(`INSERT INTO kv (key, value) VALUES ('theme', 'dark')`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()

	var v string
	require.NoError(t, s.DB().QueryRow(`SELECT value FROM kv WHERE key = 'theme'`).Scan(&v))
	assert.Equal(t, "dark", v)
}

func TestOpen_PathWithURIDelimiters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "we?ird#dir")
	path := filepath.Join(dir, "time to.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	require.NoError(t, err, "database should be created at the exact path")

	entries, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no stray files beside the weird directory")

	data, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestDSN(t *testing.T) {
	name, err := dsn("/tmp/we?ird#dir/timeto.db")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "file:"), name)
	assert.Contains(t, name, "we%3Fird%23dir")
	assert.Contains(t, name, "?_pragma=busy_timeout(5000)")
	assert.Equal(t, 1, strings.Count(name, "?"), name)
	assert.NotContains(t, name, "#")

	mem, err := dsn(":memory:")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mem, "file::memory:?"), mem)
}

func TestSnapshot_AllTables(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	s.WithClock(backup.ClockFunc(func() time.Time { return at }))

	db := s.DB()
	_, err := db.Exec(`INSERT INTO activity (id, name, sort) VALUES (1, 'Work', 0), (2, 'Read', 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO interval (id, activity_id, timer, note) VALUES (100, 1, 3600, NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO goal (id, activity_id, seconds, period_json) VALUES (1, 2, 1800, '{"type":1}')`)
	require.NoError(t, err)

	data, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, Format, doc.Format)
	assert.True(t, at.Equal(doc.ExportedAt))
	for _, table := range []string{"activity", "interval", "goal", "event", "checklist", "checklist_item", "kv"} {
		assert.Contains(t, doc.Tables, table)
	}

	require.Len(t, doc.Tables["activity"], 2)
	assert.Equal(t, "Work", doc.Tables["activity"][0]["name"])
	assert.Equal(t, "Read", doc.Tables["activity"][1]["name"])

	require.Len(t, doc.Tables["interval"], 1)
	assert.InDelta(t, 3600, doc.Tables["interval"][0]["timer"], 0)
	assert.Nil(t, doc.Tables["interval"][0]["note"])

	assert.NotNil(t, doc.Tables["event"])
	assert.Empty(t, doc.Tables["event"])
}

func TestSnapshot_IncludesExtraTables(t *testing.T) {
	s := openTestStore(t)
	_, err := s.DB().Exec(`CREATE TABLE "odd ""name""" (k TEXT PRIMARY KEY, v TEXT) WITHOUT ROWID`)
	require.NoError(t, err)
	_, err = s.DB().Exec(`INSERT INTO "odd ""name""" VALUES ('a', 'b')`)
	require.NoError(t, err)

	data, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Tables[`odd "name"`], 1)
	assert.Equal(t, "b", doc.Tables[`odd "name"`][0]["v"])
}

func TestSnapshot_CancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Snapshot(ctx)
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"kv"`, quoteIdent("kv"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
