package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Mode identifies which fingerprint algorithm produced a digest.
type Mode string

const (
	ModeOrdered   Mode = "ordered"
	ModeUnordered Mode = "unordered"
)

// Entry is one recorded fingerprint computation.
type Entry struct {
	ID        string
	Path      string
	Mode      Mode
	Digest    string
	Rows      int
	Columns   int
	CreatedAt time.Time
}

// Store manages fingerprint history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(dbPath + ".lock"),
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS fingerprints (
    id         TEXT PRIMARY KEY,
    path       TEXT NOT NULL,
    mode       TEXT NOT NULL,
    digest     TEXT NOT NULL,
    rows       INTEGER NOT NULL,
    columns    INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fingerprints_digest ON fingerprints(digest);
CREATE INDEX IF NOT EXISTS idx_fingerprints_path ON fingerprints(path);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the database.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Record inserts a new history entry and returns it with the generated
// identifier and timestamp filled in.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	if err := s.lock.Lock(); err != nil {
		return Entry{}, fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO fingerprints (id, path, mode, digest, rows, columns, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Path,
		string(entry.Mode),
		entry.Digest,
		entry.Rows,
		entry.Columns,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert fingerprint: %w", err)
	}
	return entry, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, path, mode, digest, rows, columns, created_at
              FROM fingerprints ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fingerprints: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// FindByDigest returns every entry that produced the given digest.
func (s *Store) FindByDigest(ctx context.Context, digest string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, path, mode, digest, rows, columns, created_at
         FROM fingerprints WHERE digest = ? ORDER BY created_at DESC, id`,
		digest,
	)
	if err != nil {
		return nil, fmt.Errorf("find by digest: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var mode, createdAt string
		if err := rows.Scan(&entry.ID, &entry.Path, &mode, &entry.Digest, &entry.Rows, &entry.Columns, &createdAt); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		entry.Mode = Mode(mode)
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		entry.CreatedAt = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fingerprints: %w", err)
	}
	return entries, nil
}
