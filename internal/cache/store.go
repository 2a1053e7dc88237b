// Package cache persists the last known good items for each feed.
//
// The snapshot lets a cold start render content before the first network
// round-trip completes. A feed's entry is replaced wholesale on a
// successful cycle and left untouched when the feed fails, so stale data
// survives outages.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ve7ltx/rssdos/internal/feed"
)

// Entry is one feed's cached content.
type Entry struct {
	Items       []feed.Item `json:"items"`
	LastUpdated time.Time   `json:"last_updated"`
}

// Store holds the per-feed item snapshots. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
}

// New creates a Store persisting to path. Call Load to pick up a previous
// snapshot.
func New(path string) *Store {
	return &Store{
		path:    path,
		entries: make(map[string]Entry),
	}
}

// Load reads the snapshot from disk. A missing file is not an error; a
// corrupt file is reported but leaves the store empty and usable.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read cache snapshot: %w", err)
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode cache snapshot: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Upsert replaces feedID's entry entirely with items (newest first).
func (s *Store) Upsert(feedID string, items []feed.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]feed.Item, len(items))
	copy(copied, items)
	s.entries[feedID] = Entry{
		Items:       copied,
		LastUpdated: time.Now().UTC(),
	}
}

// Get returns feedID's entry. Never fails: a feed that was never populated
// yields an empty entry.
func (s *Store) Get(feedID string) Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[feedID]
	if !ok {
		return Entry{}
	}
	items := make([]feed.Item, len(e.Items))
	copy(items, e.Items)
	return Entry{Items: items, LastUpdated: e.LastUpdated}
}

// FeedIDs returns the IDs of all populated entries.
func (s *Store) FeedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

// Reset drops all entries. Used by the explicit clear-cache operation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
}

// Persist writes the snapshot to disk. Failure is non-fatal for the
// caller: in-memory state stays authoritative.
func (s *Store) Persist() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode cache snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write cache snapshot: %w", err)
	}
	return nil
}
