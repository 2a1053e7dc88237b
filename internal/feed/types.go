// Package feed defines the data model shared by the aggregation engine:
// categories, configured sources, normalized items, and per-feed health.
package feed

import "time"

// Category groups sources for filtering and display.
type Category string

const (
	CategoryEconomy  Category = "ECONOMY"
	CategoryFinance  Category = "FINANCE"
	CategoryTrade    Category = "TRADE"
	CategoryTech     Category = "TECH"
	CategoryScience  Category = "SCIENCE"
	CategoryResearch Category = "RESEARCH"
	CategoryWeather  Category = "WEATHER"
	CategoryWorld    Category = "WORLD"
	CategoryNews     Category = "NEWS"
	CategoryOther    Category = "OTHER"
)

// Categories returns all selectable categories in display order.
// The order matches the 1-9 toggle keys of the presentation layer.
func Categories() []Category {
	return []Category{
		CategoryEconomy,
		CategoryFinance,
		CategoryTrade,
		CategoryTech,
		CategoryScience,
		CategoryResearch,
		CategoryWeather,
		CategoryWorld,
		CategoryNews,
	}
}

// Source is a configured feed. Immutable after configuration load.
//
// URLs holds the primary URL plus optional fallbacks; a fetch cycle tries
// them in order until one succeeds and reports the one used in Status.
type Source struct {
	ID       string
	Name     string
	Code     string // short code for announcements and list display ("CBC", "BBC")
	Category Category
	URLs     []string
	Enabled  bool
}

// URL returns the primary URL, or "" if none configured.
func (s Source) URL() string {
	if len(s.URLs) == 0 {
		return ""
	}
	return s.URLs[0]
}

// Item is a single normalized headline extracted from a feed.
// Immutable once created; ID is the sole equality key.
type Item struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	Link       string    `json:"link"`
	Published  time.Time `json:"publish_time"` // zero when the feed omitted it
	Category   Category  `json:"category"`
	SourceID   string    `json:"source_id"`
	SourceName string    `json:"source_name"`
	SourceCode string    `json:"source_code"`
	Fetched    time.Time `json:"fetched_at"`

	// New marks items not seen in any prior cycle. Presentation state,
	// not part of the persisted snapshot.
	New bool `json:"-"`
}

// State is the outcome of a feed's most recent fetch attempt.
type State string

const (
	StateOK   State = "OK"
	StateFail State = "FAIL"
)

// Status is the health record for one source, rebuilt every cycle.
type Status struct {
	FeedID      string
	Name        string
	Category    Category
	State       State
	ItemCount   int
	ActiveURL   string
	LastError   string
	LastAttempt time.Time
}
