// Package snapshot serializes the timeto database for backups.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/paths"
)

// Format identifies the snapshot document layout.
const Format = "timeto-backup/1"

// BusyTimeout is how long a connection waits on a locked database.
const BusyTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS activity (
	id         INTEGER PRIMARY KEY,
	name       TEXT    NOT NULL,
	sort       INTEGER NOT NULL DEFAULT 0,
	color_rgba TEXT    NOT NULL DEFAULT '',
	type_id    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS interval (
	id          INTEGER PRIMARY KEY,
	activity_id INTEGER NOT NULL REFERENCES activity(id),
	timer       INTEGER NOT NULL,
	note        TEXT
);

CREATE TABLE IF NOT EXISTS goal (
	id          INTEGER PRIMARY KEY,
	activity_id INTEGER NOT NULL REFERENCES activity(id),
	seconds     INTEGER NOT NULL,
	period_json TEXT    NOT NULL,
	note        TEXT    NOT NULL DEFAULT '',
	finish_text TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS event (
	id   INTEGER PRIMARY KEY,
	text TEXT    NOT NULL,
	utc_time INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS checklist (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checklist_item (
	id           INTEGER PRIMARY KEY,
	checklist_id INTEGER NOT NULL REFERENCES checklist(id),
	text         TEXT    NOT NULL,
	check_time   INTEGER NOT NULL DEFAULT 0,
	sort         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is the time-tracking database.
type Store struct {
	db    *sql.DB
	path  string
	clock backup.Clock
}

var _ backup.Snapshotter = (*Store)(nil)

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is empty")
	}
	if path != ":memory:" {
		if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
			return nil, err
		}
	}

	name, err := dsn(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db, path: path, clock: backup.SystemClock}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "initializing schema")
	}
	return s, nil
}

// dsn builds a file URI for path. The path is escaped so that characters
// such as '?' and '#' stay part of the file name.
func dsn(path string) (string, error) {
	pragmas := fmt.Sprintf("_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		BusyTimeout.Milliseconds())
	if path == ":memory:" {
		return "file::memory:?" + pragmas, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving database path %s", path)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: pragmas}
	return u.String(), nil
}

// WithClock sets the clock used for the exported_at field.
func (s *Store) WithClock(c backup.Clock) *Store {
	s.clock = c
	return s
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Document is the JSON layout of a snapshot.
type Document struct {
	Format     string                      `json:"format"`
	ExportedAt time.Time                   `json:"exported_at"`
	Tables     map[string][]map[string]any `json:"tables"`
}

// Snapshot dumps every user table inside one read transaction and returns
// the JSON document.
func (s *Store) Snapshot(ctx context.Context) ([]byte, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "starting read transaction")
	}
	defer func() { _ = tx.Rollback() }()

	tables, err := listTables(ctx, tx)
	if err != nil {
		return nil, err
	}

	doc := Document{
		Format:     Format,
		ExportedAt: s.clock.Now().UTC(),
		Tables:     make(map[string][]map[string]any, len(tables)),
	}
	for _, name := range tables {
		rows, err := dumpTable(ctx, tx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "dumping table %s", name)
		}
		doc.Tables[name] = rows
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}
	return data, nil
}

func listTables(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "listing tables")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scanning table name")
		}
		names = append(names, name)
	}
	return names, errors.Wrap(rows.Err(), "listing tables")
}

func dumpTable(ctx context.Context, tx *sql.Tx, name string) ([]map[string]any, error) {
	query := "SELECT * FROM " + quoteIdent(name) + " ORDER BY rowid"
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		// WITHOUT ROWID tables have no rowid.
		rows, err = tx.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name))
		if err != nil {
			return nil, err
		}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
