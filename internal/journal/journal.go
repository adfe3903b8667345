// Package journal keeps a local history of publish runs in SQLite, backing
// the `docpush history` command.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded publish run.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	Slug       string
	Branch     string
	Outcome    string // published|skipped|failed|canceled
	Reason     string // skip reason or first error, empty on success
	CommitHash string
	Duration   time.Duration
}

// Store persists publish run entries.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and if necessary initializes) the journal database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize journal schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS publishes (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		slug TEXT NOT NULL,
		branch TEXT NOT NULL,
		outcome TEXT NOT NULL,
		reason TEXT,
		commit_hash TEXT,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_publishes_created_at ON publishes(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one publish run entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO publishes (id, created_at, slug, branch, outcome, reason, commit_hash, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, createdAt.Unix(), e.Slug, e.Branch, e.Outcome, e.Reason, e.CommitHash, e.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record publish entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, slug, branch, outcome, reason, commit_hash, duration_ms
		 FROM publishes ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query publish history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		var durationMS int64
		if err := rows.Scan(&e.ID, &createdAt, &e.Slug, &e.Branch, &e.Outcome, &e.Reason, &e.CommitHash, &durationMS); err != nil {
			return nil, fmt.Errorf("scan publish entry: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
