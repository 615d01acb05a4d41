// Package cache persists per-file duplicate-detection results across runs.
// Entries are keyed by file path and invalidated by content fingerprint.
// The cache only changes how fast results are computed, never what they
// are; any doubt about an entry is resolved as a miss.
package cache

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Entry is one cached file computation. Payload is opaque to this package.
type Entry struct {
	Path        string
	ContentHash string
	Payload     []byte
	RunID       string
	UpdatedAt   time.Time
}

// Backend stores entries durably. Implementations must be safe for
// concurrent use; within one run no two writers ever share a path.
type Backend interface {
	Get(path string) (*Entry, error)
	Put(entry *Entry) error
	Delete(path string) error
	Clear() error
	Len() (int, error)
	Close() error
}

// Store wraps a backend with fingerprint validation, age-based eviction and
// hit/miss accounting for one run.
type Store struct {
	backend Backend
	maxAge  time.Duration // zero disables age eviction
	runID   string
	logger  *slog.Logger
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewStore creates a store for one run. Every entry written through it is
// stamped with a fresh run ID.
func NewStore(backend Backend, maxAge time.Duration, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		maxAge:  maxAge,
		runID:   uuid.NewString(),
		logger:  logger,
		now:     time.Now,
	}
}

// RunID identifies this run in stored entries.
func (s *Store) RunID() string {
	return s.runID
}

// Get returns the cached payload for path when the stored fingerprint
// matches contentHash and the entry is fresh enough. Entries past the age
// limit are deleted on access. A backend failure degrades to a miss.
func (s *Store) Get(path, contentHash string) ([]byte, bool) {
	entry, err := s.backend.Get(path)
	if err != nil {
		s.logger.Warn("cache read failed", "path", path, "error", err)
		s.misses.Add(1)
		return nil, false
	}
	if entry == nil {
		s.misses.Add(1)
		return nil, false
	}
	if s.maxAge > 0 && s.now().Sub(entry.UpdatedAt) > s.maxAge {
		if err := s.backend.Delete(path); err != nil {
			s.logger.Warn("cache eviction failed", "path", path, "error", err)
		}
		s.misses.Add(1)
		return nil, false
	}
	if entry.ContentHash != contentHash {
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return entry.Payload, true
}

// Put stores a freshly computed payload. Write failures are logged, never
// fatal; the entry is simply recomputed next run.
func (s *Store) Put(path, contentHash string, payload []byte) {
	entry := &Entry{
		Path:        path,
		ContentHash: contentHash,
		Payload:     payload,
		RunID:       s.runID,
		UpdatedAt:   s.now(),
	}
	if err := s.backend.Put(entry); err != nil {
		s.logger.Warn("cache write failed", "path", path, "error", err)
	}
}

// MarkCorrupt removes an entry whose payload failed to decode and
// reclassifies the earlier lookup as a miss.
func (s *Store) MarkCorrupt(path string) {
	if err := s.backend.Delete(path); err != nil {
		s.logger.Warn("cache delete failed", "path", path, "error", err)
	}
	s.hits.Add(-1)
	s.misses.Add(1)
}

// Counts returns the hit/miss totals accumulated so far.
func (s *Store) Counts() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// Len returns the number of stored entries.
func (s *Store) Len() (int, error) {
	return s.backend.Len()
}

// Clear drops every entry.
func (s *Store) Clear() error {
	return s.backend.Clear()
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
