package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ve7ltx/rssdos/internal/feed"
)

func sampleItems(feedID string, n int) []feed.Item {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	out := make([]feed.Item, n)
	for i := range out {
		out[i] = feed.Item{
			ID:        feedID + "-" + string(rune('a'+i)),
			Title:     "headline",
			Link:      "https://example.org/" + feedID,
			Published: base.Add(-time.Duration(i) * time.Minute),
			SourceID:  feedID,
		}
	}
	return out
}

func TestUpsertAndGet(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))

	s.Upsert("cbc", sampleItems("cbc", 3))

	e := s.Get("cbc")
	if len(e.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(e.Items))
	}
	if e.LastUpdated.IsZero() {
		t.Fatal("LastUpdated not set on upsert")
	}

	// Upsert replaces wholesale.
	s.Upsert("cbc", sampleItems("cbc", 1))
	if e := s.Get("cbc"); len(e.Items) != 1 {
		t.Fatalf("got %d items after replace, want 1", len(e.Items))
	}
}

func TestGetUnknownFeed(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))

	e := s.Get("never-populated")
	if len(e.Items) != 0 || !e.LastUpdated.IsZero() {
		t.Fatalf("unknown feed returned %+v, want empty entry", e)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))
	s.Upsert("bbc", sampleItems("bbc", 2))

	e := s.Get("bbc")
	e.Items[0].Title = "mutated"

	if s.Get("bbc").Items[0].Title == "mutated" {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestReset(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))
	s.Upsert("cbc", sampleItems("cbc", 2))
	s.Upsert("bbc", sampleItems("bbc", 2))

	s.Reset()
	if ids := s.FeedIDs(); len(ids) != 0 {
		t.Fatalf("feed ids after reset: %v", ids)
	}
}

func TestPersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := New(path)
	s.Upsert("cbc", sampleItems("cbc", 2))
	s.Upsert("bbc", sampleItems("bbc", 1))
	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	reloaded := New(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(reloaded.FeedIDs()); got != 2 {
		t.Fatalf("reloaded %d feeds, want 2", got)
	}

	want := s.Get("cbc")
	got := reloaded.Get("cbc")
	if len(got.Items) != len(want.Items) {
		t.Fatalf("reloaded %d items, want %d", len(got.Items), len(want.Items))
	}
	if got.Items[0].ID != want.Items[0].ID || !got.Items[0].Published.Equal(want.Items[0].Published) {
		t.Fatalf("reloaded item %+v, want %+v", got.Items[0], want.Items[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("load of missing file: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("[1,2,3"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	if err := s.Load(); err == nil {
		t.Fatal("expected an error for a corrupt snapshot")
	}
	// Still usable.
	s.Upsert("cbc", sampleItems("cbc", 1))
	if len(s.Get("cbc").Items) != 1 {
		t.Fatal("store unusable after corrupt load")
	}
}

func TestPersistBadPath(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "no-such-dir", "cache.json"))
	s.Upsert("cbc", sampleItems("cbc", 1))
	if err := s.Persist(); err == nil {
		t.Fatal("expected persist to an unwritable path to fail")
	}
}
