package feed

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCategoriesOrder(t *testing.T) {
	want := []Category{
		CategoryEconomy, CategoryFinance, CategoryTrade,
		CategoryTech, CategoryScience, CategoryResearch,
		CategoryWeather, CategoryWorld, CategoryNews,
	}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRegistry(t *testing.T) {
	sources := []Source{
		{ID: "a", Name: "A", Enabled: true},
		{ID: "b", Name: "B", Enabled: false},
		{ID: "c", Name: "C", Enabled: true},
	}
	r := NewRegistry(sources)

	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}
	if got := r.Enabled(); len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("enabled = %v", got)
	}

	s, ok := r.Get("b")
	if !ok || s.Name != "B" {
		t.Fatalf("Get(b) = %+v, %v", s, ok)
	}
	if _, ok := r.Get("nope"); ok {
		t.Fatal("Get returned ok for an unknown ID")
	}

	// The registry is insulated from caller mutation.
	sources[0].Name = "mutated"
	if s, _ := r.Get("a"); s.Name != "A" {
		t.Fatal("caller mutation leaked into the registry")
	}
}

func TestSourceURL(t *testing.T) {
	s := Source{URLs: []string{"https://a.example", "https://b.example"}}
	if s.URL() != "https://a.example" {
		t.Fatalf("URL() = %s", s.URL())
	}
	if (Source{}).URL() != "" {
		t.Fatal("empty source returned a URL")
	}
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	if len(sources) == 0 {
		t.Fatal("no built-in sources")
	}

	seen := make(map[string]bool)
	for _, s := range sources {
		if s.ID == "" || s.Name == "" || s.Code == "" {
			t.Errorf("incomplete source %+v", s)
		}
		if seen[s.ID] {
			t.Errorf("duplicate source ID %s", s.ID)
		}
		seen[s.ID] = true
		if len(s.URLs) == 0 {
			t.Errorf("%s has no URLs", s.ID)
		}
		for _, u := range s.URLs {
			if !strings.HasPrefix(u, "http") {
				t.Errorf("%s has a bad URL %q", s.ID, u)
			}
		}
		if !s.Enabled {
			t.Errorf("%s disabled by default", s.ID)
		}
		if s.Category == "" || s.Category == CategoryOther {
			t.Errorf("%s has no category", s.ID)
		}
	}
}

func TestItemNewNotPersisted(t *testing.T) {
	it := Item{
		ID:        "x",
		Title:     "headline",
		Published: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		New:       true,
	}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.ToLower(string(data)), "new") {
		t.Fatalf("presentation flag leaked into the snapshot: %s", data)
	}

	var back Item
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.New {
		t.Fatal("New survived a round-trip")
	}
	if !back.Published.Equal(it.Published) {
		t.Fatalf("published = %v, want %v", back.Published, it.Published)
	}
}
