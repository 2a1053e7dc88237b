// Package status records the latest fetch outcome for each feed.
//
// The registry is a passive recorder: it keeps only the most recent attempt
// per feed and holds no retry logic.
package status

import (
	"sync"

	"github.com/ve7ltx/rssdos/internal/feed"
)

// Registry holds one health record per configured source.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]feed.Status
}

// New creates a Registry seeded with the configured sources so All returns
// records in registry order even before the first cycle.
func New(sources []feed.Source) *Registry {
	r := &Registry{byID: make(map[string]feed.Status, len(sources))}
	for _, s := range sources {
		r.order = append(r.order, s.ID)
		r.byID[s.ID] = feed.Status{
			FeedID:   s.ID,
			Name:     s.Name,
			Category: s.Category,
			State:    feed.StateFail,
		}
	}
	return r
}

// Record overwrites the feed's status. Only the latest attempt matters.
func (r *Registry) Record(st feed.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[st.FeedID]; !ok {
		r.order = append(r.order, st.FeedID)
	}
	r.byID[st.FeedID] = st
}

// Get returns the feed's status.
func (r *Registry) Get(feedID string) (feed.Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.byID[feedID]
	return st, ok
}

// All returns every status in registry order.
func (r *Registry) All() []feed.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feed.Status, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
