// Package speech provides the speak/stop boundary used to announce
// headlines.
//
// The aggregation engine never blocks on audio: announcements go through a
// queue worker, a new announcement supersedes anything still queued, and
// Stop takes effect immediately regardless of what is playing.
package speech

import "context"

// Engine synthesizes and plays a single utterance, blocking until playback
// finishes or ctx is cancelled.
type Engine interface {
	Speak(ctx context.Context, text string) error
}
