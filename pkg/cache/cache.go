// Package cache persists what was rendered from which source so that
// unchanged documents can be skipped on the next run.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yaklabco/mdhtml/pkg/fsutil"
)

// Entry records one rendered document.
type Entry struct {
	// Source is the cache key, the source path as given to the runner.
	Source string

	// Output is the path the rendering was written to.
	Output string

	// SourceHash, OptionsHash and OutputHash are hex SHA-256 digests.
	SourceHash  string
	OptionsHash string
	OutputHash  string

	RenderedAt time.Time
}

// Cache is a SQLite backed render cache. It is safe for concurrent use.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, fsutil.DefaultDirMode); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows one writer; serialize instead of retrying on SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	c := &Cache{db: db, path: path}
	if err := c.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return c, nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS renders (
		source TEXT PRIMARY KEY,
		output TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		options_hash TEXT NOT NULL,
		output_hash TEXT NOT NULL,
		rendered_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Key identifies the rendering a run wants to reuse.
type Key struct {
	Source      string
	Output      string
	SourceHash  string
	OptionsHash string
}

// Lookup returns the entry for key.Source when it is still valid: both hashes
// match, the entry was written to key.Output, and that file still holds the
// recorded content.
func (c *Cache) Lookup(ctx context.Context, key Key) (Entry, bool, error) {
	var (
		entry      Entry
		renderedAt string
	)

	err := c.db.QueryRowContext(ctx,
		`SELECT source, output, source_hash, options_hash, output_hash, rendered_at
		 FROM renders WHERE source = ?`, key.Source,
	).Scan(&entry.Source, &entry.Output, &entry.SourceHash, &entry.OptionsHash, &entry.OutputHash, &renderedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("querying %s: %w", key.Source, err)
	}

	entry.RenderedAt, _ = time.Parse(time.RFC3339Nano, renderedAt)

	if entry.SourceHash != key.SourceHash || entry.OptionsHash != key.OptionsHash || entry.Output != key.Output {
		return entry, false, nil
	}

	outputHash, err := fsutil.HashFile(entry.Output)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return entry, false, nil
		}
		return entry, false, fmt.Errorf("verifying output: %w", err)
	}

	return entry, outputHash == entry.OutputHash, nil
}

// Store inserts or replaces the entry for entry.Source.
// A zero RenderedAt is set to the current time.
func (c *Cache) Store(ctx context.Context, entry Entry) error {
	if entry.RenderedAt.IsZero() {
		entry.RenderedAt = time.Now()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO renders (source, output, source_hash, options_hash, output_hash, rendered_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			output = excluded.output,
			source_hash = excluded.source_hash,
			options_hash = excluded.options_hash,
			output_hash = excluded.output_hash,
			rendered_at = excluded.rendered_at`,
		entry.Source, entry.Output, entry.SourceHash, entry.OptionsHash, entry.OutputHash,
		entry.RenderedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", entry.Source, err)
	}
	return nil
}

// Forget removes the entry for source, if any.
func (c *Cache) Forget(ctx context.Context, source string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM renders WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting %s: %w", source, err)
	}
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM renders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}
