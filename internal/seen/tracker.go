// Package seen tracks item identifiers observed in past refresh cycles.
//
// The set grows monotonically and is persisted as a JSON array so it
// survives restarts. It never shrinks except through Clear, which backs the
// explicit clear-cache operation.
package seen

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ve7ltx/rssdos/internal/feed"
)

// Tracker is the persistent set of previously observed item IDs.
// Safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	path string
	ids  map[string]struct{}
}

// New creates a Tracker persisting to path. Call Load to pick up a
// previous snapshot.
func New(path string) *Tracker {
	return &Tracker{
		path: path,
		ids:  make(map[string]struct{}),
	}
}

// Load reads the snapshot from disk. A missing file is not an error; a
// corrupt file is reported but leaves the tracker empty and usable.
func (t *Tracker) Load() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read seen snapshot: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("decode seen snapshot: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		t.ids[id] = struct{}{}
	}
	return nil
}

// FilterAndMark returns the items whose IDs have not been observed before,
// and marks every input item's ID as seen, including filtered ones, since
// "seen" means ever observed, not new.
func (t *Tracker) FilterAndMark(items []feed.Item) []feed.Item {
	t.mu.Lock()
	defer t.mu.Unlock()

	var fresh []feed.Item
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, ok := t.ids[it.ID]; !ok {
			it.New = true
			fresh = append(fresh, it)
		}
		t.ids[it.ID] = struct{}{}
	}
	return fresh
}

// Has reports whether id has been observed in any cycle.
func (t *Tracker) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ids[id]
	return ok
}

// Clear empties the set. The next cycle's items are all treated as new,
// which may re-announce headlines shown before; that is the point of a
// manual cache clear.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = make(map[string]struct{})
}

// Len returns the number of tracked IDs.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

// Persist writes the snapshot to disk as a sorted JSON array. Failure is
// non-fatal for the caller: in-memory state stays authoritative.
func (t *Tracker) Persist() error {
	t.mu.Lock()
	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	sort.Strings(ids)
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seen snapshot: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0644); err != nil {
		return fmt.Errorf("write seen snapshot: %w", err)
	}
	return nil
}
