package speech

import (
	"strings"

	"github.com/ve7ltx/rssdos/internal/feed"
)

// Announcement composes the spoken text for an item: category, source
// code, then the title, optionally followed by the summary.
func Announcement(it feed.Item, includeSummary bool) string {
	var b strings.Builder
	b.WriteString(string(it.Category))
	b.WriteString(". ")
	if it.SourceCode != "" {
		b.WriteString(it.SourceCode)
		b.WriteString(". ")
	}
	b.WriteString(strings.TrimSpace(it.Title))
	if !strings.HasSuffix(it.Title, ".") {
		b.WriteString(".")
	}
	if includeSummary && it.Summary != "" {
		b.WriteString(" ")
		b.WriteString(strings.TrimSpace(it.Summary))
	}
	return b.String()
}
