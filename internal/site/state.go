package site

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// StateStore records per-source content hashes so unchanged sources can be
// skipped on subsequent builds. Use ":memory:" for an ephemeral store.
type StateStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStateStore opens (creating if needed) the build-state database.
func NewStateStore(dbPath string) (*StateStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	store := &StateStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize state schema: %w", err)
	}
	return store, nil
}

func (s *StateStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		source TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		output TEXT NOT NULL,
		rendered_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Hash returns the lookup key for source content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the recorded hash for a source path. ok is false when the
// source has never been rendered.
func (s *StateStore) Lookup(ctx context.Context, source string) (hash string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, "SELECT hash FROM pages WHERE source = ?", source)
	switch err := row.Scan(&hash); err {
	case nil:
		return hash, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("query page state: %w", err)
	}
}

// Record upserts the rendered state for a source path.
func (s *StateStore) Record(ctx context.Context, source, hash, output string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (source, hash, output, rendered_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET hash = excluded.hash, output = excluded.output, rendered_at = excluded.rendered_at`,
		source, hash, output, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record page state: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *StateStore) Close() error {
	return s.db.Close()
}
