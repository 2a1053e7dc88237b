package engine

import (
	"github.com/ve7ltx/rssdos/internal/feed"
	"github.com/ve7ltx/rssdos/internal/speech"
)

// The read side of the engine, consumed by the presentation layer. Every
// accessor returns a copy of a completed cycle's state; a partially merged
// cycle is never observable.

// Items returns the merged item set, newest first, filtered to the active
// categories (or to only, when given).
func (e *Engine) Items(only ...feed.Category) []feed.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allow := e.active
	if len(only) > 0 {
		allow = make(map[feed.Category]bool, len(only))
		for _, c := range only {
			allow[c] = true
		}
	}

	var out []feed.Item
	for _, it := range e.merged {
		if allow[it.Category] {
			out = append(out, it)
		}
	}
	return out
}

// Statuses returns every feed's health record in registry order.
func (e *Engine) Statuses() []feed.Status {
	return e.statuses.All()
}

// Notifications delivers new-newest-headline events. The channel is
// best-effort: slow consumers miss events rather than stalling cycles.
func (e *Engine) Notifications() <-chan feed.Item {
	return e.notifications
}

// Degraded reports whether the last cycle failed to persist a snapshot.
// In-memory state remains authoritative while degraded.
func (e *Engine) Degraded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.degraded
}

// ToggleCategory flips one category's visibility.
func (e *Engine) ToggleCategory(c feed.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active[c] = !e.active[c]
}

// ToggleAllCategories hides everything if any category is visible,
// otherwise shows everything.
func (e *Engine) ToggleAllCategories() {
	e.mu.Lock()
	defer e.mu.Unlock()

	any := false
	for _, on := range e.active {
		if on {
			any = true
			break
		}
	}
	for _, c := range feed.Categories() {
		e.active[c] = !any
	}
}

// ActiveCategories returns the visible categories in display order.
func (e *Engine) ActiveCategories() []feed.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []feed.Category
	for _, c := range feed.Categories() {
		if e.active[c] {
			out = append(out, c)
		}
	}
	return out
}

// SpeakNewest announces the newest visible item on demand, bypassing the
// latch. No-op without a speaker or items.
func (e *Engine) SpeakNewest() {
	if e.speaker == nil {
		return
	}
	items := e.Items()
	if len(items) == 0 {
		return
	}
	e.speaker.Say(speech.Announcement(items[0], e.opts.IncludeSummary))
}

// StopSpeaking cuts off the current announcement immediately.
func (e *Engine) StopSpeaking() {
	if e.speaker != nil {
		e.speaker.Stop()
	}
}
