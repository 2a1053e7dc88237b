package latch

import (
	"testing"
	"time"

	"github.com/ve7ltx/rssdos/internal/feed"
)

func item(id string, published time.Time) feed.Item {
	return feed.Item{ID: id, Title: "headline " + id, Published: published}
}

func TestEvaluateFiresOncePerNewest(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	l := New()

	// First non-empty set fires.
	got, ok := l.Evaluate([]feed.Item{item("a", base)})
	if !ok {
		t.Fatal("expected first evaluate to fire")
	}
	if got.ID != "a" {
		t.Fatalf("got %q, want a", got.ID)
	}

	// Same newest item again: silent, however many times.
	for i := 0; i < 3; i++ {
		if _, ok := l.Evaluate([]feed.Item{item("a", base)}); ok {
			t.Fatalf("evaluate %d re-fired for unchanged newest", i)
		}
	}

	// A newer item takes over and fires exactly once.
	set := []feed.Item{item("a", base), item("b", base.Add(time.Hour))}
	got, ok = l.Evaluate(set)
	if !ok || got.ID != "b" {
		t.Fatalf("got (%q, %v), want (b, true)", got.ID, ok)
	}
	if _, ok := l.Evaluate(set); ok {
		t.Fatal("re-fired for unchanged newest b")
	}

	// Sequence sanity: a,a,b,b,b,c fires three times total.
	l2 := New()
	fires := 0
	for _, id := range []string{"a", "a", "b", "b", "b", "c"} {
		ts := base
		switch id {
		case "b":
			ts = base.Add(time.Hour)
		case "c":
			ts = base.Add(2 * time.Hour)
		}
		if _, ok := l2.Evaluate([]feed.Item{item(id, ts)}); ok {
			fires++
		}
	}
	if fires != 3 {
		t.Fatalf("fired %d times, want 3", fires)
	}
}

func TestEvaluateEmptySet(t *testing.T) {
	l := New()
	if _, ok := l.Evaluate(nil); ok {
		t.Fatal("fired on empty set")
	}
	if l.Current() != "" {
		t.Fatalf("latched %q on empty set", l.Current())
	}

	// Empty to non-empty transition fires.
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if _, ok := l.Evaluate([]feed.Item{item("a", base)}); !ok {
		t.Fatal("did not fire on empty to non-empty transition")
	}
}

func TestEvaluateTieBreaksByArrival(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	l := New()

	// Two items with the same publish time: the earlier one in the slice
	// wins, so a merged set sorted newest-first stays stable.
	got, ok := l.Evaluate([]feed.Item{item("a", base), item("b", base)})
	if !ok || got.ID != "a" {
		t.Fatalf("got (%q, %v), want (a, true)", got.ID, ok)
	}
}

func TestEvaluateSkipsEmptyID(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	l := New()

	if _, ok := l.Evaluate([]feed.Item{{Published: base}}); ok {
		t.Fatal("fired for an item without an ID")
	}
}

func TestResetReFires(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	l := New()

	set := []feed.Item{item("a", base)}
	if _, ok := l.Evaluate(set); !ok {
		t.Fatal("expected first evaluate to fire")
	}
	if _, ok := l.Evaluate(set); ok {
		t.Fatal("re-fired without reset")
	}

	l.Reset()
	if l.Current() != "" {
		t.Fatalf("current = %q after reset", l.Current())
	}
	got, ok := l.Evaluate(set)
	if !ok || got.ID != "a" {
		t.Fatalf("got (%q, %v) after reset, want (a, true)", got.ID, ok)
	}
}
