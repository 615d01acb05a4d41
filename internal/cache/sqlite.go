package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend persists cache entries in a local SQLite database. The
// database lives wherever the configured cache path points, typically
// inside the repository's cache directory.
type SQLiteBackend struct {
	conn   *sql.DB
	dbPath string
}

// OpenSQLite opens or creates the cache database at dbPath, creating parent
// directories as needed.
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
		"PRAGMA temp_store=MEMORY",  // Use memory for temp tables
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS file_windows (
			path TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			payload BLOB NOT NULL,
			run_id TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &SQLiteBackend{conn: conn, dbPath: dbPath}, nil
}

// Path returns the database file location.
func (b *SQLiteBackend) Path() string {
	return b.dbPath
}

// Get returns the entry for path, or nil when none is stored.
func (b *SQLiteBackend) Get(path string) (*Entry, error) {
	var entry Entry
	var updatedAt string

	err := b.conn.QueryRow(`
		SELECT path, content_hash, payload, run_id, updated_at
		FROM file_windows
		WHERE path = ?
	`, path).Scan(&entry.Path, &entry.ContentHash, &entry.Payload, &entry.RunID, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup failed: %w", err)
	}

	entry.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at format: %w", err)
	}
	return &entry, nil
}

// Put stores or replaces the entry for its path. The write is a single
// statement, so readers never observe a partial entry.
func (b *SQLiteBackend) Put(entry *Entry) error {
	_, err := b.conn.Exec(`
		INSERT OR REPLACE INTO file_windows (path, content_hash, payload, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Path, entry.ContentHash, entry.Payload, entry.RunID, entry.UpdatedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for path if present.
func (b *SQLiteBackend) Delete(path string) error {
	if _, err := b.conn.Exec("DELETE FROM file_windows WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes all entries.
func (b *SQLiteBackend) Clear() error {
	if _, err := b.conn.Exec("DELETE FROM file_windows"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Len returns the number of stored entries.
func (b *SQLiteBackend) Len() (int, error) {
	var count int
	if err := b.conn.QueryRow("SELECT COUNT(*) FROM file_windows").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

// SizeBytes returns the total payload size of all entries.
func (b *SQLiteBackend) SizeBytes() (int64, error) {
	var size int64
	err := b.conn.QueryRow("SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM file_windows").Scan(&size)
	if err != nil {
		return 0, fmt.Errorf("failed to compute cache size: %w", err)
	}
	return size, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
