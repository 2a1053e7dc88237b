// Package parse decodes raw RSS/Atom documents into normalized items.
//
// Decoding is best-effort: missing summaries and publish times are treated
// as absent rather than fatal, and only a document the universal parser
// cannot read at all is reported as an error.
package parse

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/ve7ltx/rssdos/internal/feed"
)

const (
	defaultMaxItems = 140
	maxTitleLen     = 260
	maxSummaryLen   = 1400
)

// Parser converts raw feed documents into feed.Items.
type Parser struct {
	maxItems int
}

// New creates a Parser that keeps at most maxItemsPerFeed items per
// document. A non-positive value selects the default.
func New(maxItemsPerFeed int) *Parser {
	if maxItemsPerFeed <= 0 {
		maxItemsPerFeed = defaultMaxItems
	}
	return &Parser{maxItems: maxItemsPerFeed}
}

// Parse decodes raw into items attributed to src, newest first.
// Errors are always *Error with a classified Kind.
func (p *Parser) Parse(raw []byte, src feed.Source) ([]feed.Item, error) {
	// A fresh gofeed parser per call; the universal parser keeps state
	// and is not safe to share across goroutines.
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		kind := KindMalformed
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			kind = KindUnsupportedFormat
		}
		return nil, &Error{Kind: kind, Err: err}
	}

	now := time.Now()
	items := make([]feed.Item, 0, min(len(parsed.Items), p.maxItems))
	for _, entry := range parsed.Items {
		if len(items) >= p.maxItems {
			break
		}
		if entry == nil {
			continue
		}

		title := truncate(CleanText(entry.Title), maxTitleLen)
		if title == "" {
			title = "(no title)"
		}

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		summary = truncate(CleanText(summary), maxSummaryLen)

		var published time.Time // zero when the feed omitted it
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		items = append(items, feed.Item{
			ID:         deriveID(entry),
			Title:      title,
			Summary:    summary,
			Link:       strings.TrimSpace(entry.Link),
			Published:  published,
			Category:   src.Category,
			SourceID:   src.ID,
			SourceName: src.Name,
			SourceCode: src.Code,
			Fetched:    now,
		})
	}

	// Newest first; stable sort preserves the feed's own order for items
	// with equal or absent publish times.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})

	return items, nil
}

// deriveID produces the stable identity used for dedup and latch
// comparison. Provider GUIDs win, then the link; as a last resort a hash
// over the normalized title, link, and minute-truncated publish time, so
// re-fetching an unchanged item yields the same ID.
func deriveID(entry *gofeed.Item) string {
	if guid := strings.TrimSpace(entry.GUID); guid != "" {
		return hashString(guid)
	}
	if link := strings.TrimSpace(entry.Link); link != "" {
		return hashString(link)
	}

	stamp := ""
	if entry.PublishedParsed != nil {
		stamp = entry.PublishedParsed.UTC().Truncate(time.Minute).Format(time.RFC3339)
	} else if len(entry.Published) > 0 {
		stamp = entry.Published
		if len(stamp) > 50 {
			stamp = stamp[:50]
		}
	}

	return hashString(normalizeTitle(entry.Title) + "|" + entry.Link + "|" + stamp)
}

// normalizeTitle lower-cases and collapses whitespace so that cosmetic
// reformatting by a feed provider does not change the derived ID.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// hashString creates a short stable hash for use as an item ID.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&apos;", "'",
	)
)

// CleanText strips HTML tags, decodes common entities, and collapses
// whitespace.
func CleanText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// truncate shortens a string to maxLen runes, adding an ellipsis if
// truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxLen-1])) + "…"
}
