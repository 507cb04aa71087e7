// Package drafts persists form drafts in an embedded SQLite database.
package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/ports"
)

const (
	checkerName = "draft-store"
	pingTimeout = 3 * time.Second
)

const schema = `CREATE TABLE IF NOT EXISTS drafts (
	draft_key  TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

var (
	_ ports.DraftStore    = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store is a key/value draft table. Save overwrites.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the draft database at dsn, for example
// "file:drafts.db" or "file::memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening draft store: %w", err)
	}
	// One connection keeps in-memory databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging draft store: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating draft schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save upserts the draft under key.
func (s *Store) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (draft_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(draft_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving draft %q: %w", key, err)
	}
	return nil
}

// Load returns the draft under key, or domain.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE draft_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("draft %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft %q: %w", key, err)
	}
	return payload, nil
}

// Delete removes the draft under key. Deleting a missing draft is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE draft_key = ?`, key); err != nil {
		return fmt.Errorf("deleting draft %q: %w", key, err)
	}
	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return checkerName }

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("draft store unreachable: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
