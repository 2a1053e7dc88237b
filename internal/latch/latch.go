// Package latch tracks the globally newest headline and decides when it
// changed.
//
// The latch fires once per distinct newest item ID, including the first
// transition from empty, and never re-fires while the newest item stays
// the same. It decides whether to announce; it never calls the speech
// service itself.
package latch

import (
	"sync"

	"github.com/ve7ltx/rssdos/internal/feed"
)

// Latch holds the ID of the newest item announced so far.
// Safe for concurrent use.
type Latch struct {
	mu       sync.Mutex
	newestID string
}

// New creates an empty Latch.
func New() *Latch {
	return &Latch{}
}

// Evaluate finds the newest item in the merged set (by publish time,
// tie-broken by position, i.e. arrival order) and compares it against the
// latched ID. When the ID differs the latch advances and the item is
// returned with ok=true; otherwise ok=false.
func (l *Latch) Evaluate(items []feed.Item) (feed.Item, bool) {
	if len(items) == 0 {
		return feed.Item{}, false
	}

	newest := items[0]
	for _, it := range items[1:] {
		// Strictly-after only, so earlier arrival wins ties.
		if it.Published.After(newest.Published) {
			newest = it
		}
	}
	if newest.ID == "" {
		return feed.Item{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if newest.ID == l.newestID {
		return feed.Item{}, false
	}
	l.newestID = newest.ID
	return newest, true
}

// Current returns the latched ID, or "" if nothing has latched yet.
func (l *Latch) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.newestID
}

// Reset clears the latch so the next Evaluate fires even for a headline
// announced before. Used by the explicit clear-cache operation.
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.newestID = ""
}
