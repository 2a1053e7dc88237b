// Package engine orchestrates refresh cycles across all configured feeds.
//
// One scheduler goroutine owns every state mutation. Within a cycle the
// per-feed fetch+parse pipelines run concurrently, but their results are
// merged one feed at a time, so the seen set, cache, and status registry
// never see concurrent writers. At most one cycle runs at a time; force
// requests arriving mid-cycle coalesce into exactly one follow-up.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ve7ltx/rssdos/internal/cache"
	"github.com/ve7ltx/rssdos/internal/feed"
	"github.com/ve7ltx/rssdos/internal/latch"
	"github.com/ve7ltx/rssdos/internal/logging"
	"github.com/ve7ltx/rssdos/internal/seen"
	"github.com/ve7ltx/rssdos/internal/speech"
	"github.com/ve7ltx/rssdos/internal/status"
)

// Fetcher retrieves the raw document behind a feed URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Parser decodes a raw document into items attributed to a source.
type Parser interface {
	Parse(raw []byte, src feed.Source) ([]feed.Item, error)
}

// Speaker is the external speech collaborator.
type Speaker interface {
	Say(text string)
	Stop()
}

// Options tune the scheduler.
type Options struct {
	RefreshInterval time.Duration // periodic cycle interval
	MaxConcurrent   int           // parallel fetch limit per cycle
	MaxItemsTotal   int           // cap on the merged item set
	SpeakOnStart    bool          // announce the newest headline of the first cycle
	IncludeSummary  bool          // read the summary after the title
}

func (o *Options) applyDefaults() {
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = 180 * time.Second
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 5
	}
	if o.MaxItemsTotal <= 0 {
		o.MaxItemsTotal = 700
	}
}

// Engine runs the fetch-parse-dedup-cache-status pipeline on a timer and
// on demand, and exposes the merged result to the presentation layer.
type Engine struct {
	registry *feed.Registry
	fetcher  Fetcher
	parser   Parser
	tracker  *seen.Tracker
	store    *cache.Store
	statuses *status.Registry
	latch    *latch.Latch
	speaker  Speaker // nil disables announcements
	opts     Options

	mu             sync.RWMutex
	merged         []feed.Item // newest first, consistent post-cycle snapshot
	active         map[feed.Category]bool
	degraded       bool
	firstCycleDone bool

	pendMu      sync.Mutex
	pendRefresh bool
	pendClear   bool
	kick        chan struct{}

	notifications chan feed.Item
	wg            sync.WaitGroup
}

// New assembles an Engine. speaker may be nil.
func New(registry *feed.Registry, fetcher Fetcher, parser Parser, tracker *seen.Tracker,
	store *cache.Store, statuses *status.Registry, speaker Speaker, opts Options) *Engine {

	opts.applyDefaults()

	active := make(map[feed.Category]bool)
	for _, c := range feed.Categories() {
		active[c] = true
	}

	return &Engine{
		registry:      registry,
		fetcher:       fetcher,
		parser:        parser,
		tracker:       tracker,
		store:         store,
		statuses:      statuses,
		latch:         latch.New(),
		speaker:       speaker,
		opts:          opts,
		active:        active,
		kick:          make(chan struct{}, 1),
		notifications: make(chan feed.Item, 16),
	}
}

// Start begins the scheduling loop: an immediate first cycle, then one per
// refresh interval, plus any forced cycles in between. Cancel the context
// to stop; Wait blocks until the loop exits.
func (e *Engine) Start(ctx context.Context) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		e.drainPending(ctx, true)

		ticker := time.NewTicker(e.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.drainPending(ctx, true)
			case <-e.kick:
				e.drainPending(ctx, false)
			}
		}
	}()
}

// Wait blocks until the scheduling loop has exited.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// RunOnce performs a single cycle synchronously. Used by one-shot CLI
// commands; the daemon path goes through Start.
func (e *Engine) RunOnce(ctx context.Context) {
	e.runCycle(ctx)
}

// ForceRefresh requests an immediate cycle. While a cycle is running,
// any number of requests collapse into exactly one follow-up cycle.
func (e *Engine) ForceRefresh() {
	e.request(false)
}

// ClearCacheAndRefresh empties the seen set, the cache, and the headline
// latch, then refreshes. Previously shown items come back as new and the
// current newest headline is announced again.
func (e *Engine) ClearCacheAndRefresh() {
	e.request(true)
}

func (e *Engine) request(clear bool) {
	e.pendMu.Lock()
	e.pendRefresh = true
	if clear {
		e.pendClear = true
	}
	e.pendMu.Unlock()

	select {
	case e.kick <- struct{}{}:
	default:
	}
}

// drainPending runs cycles until no request is left. Requests that arrive
// while a cycle runs are picked up by the next loop iteration, so they
// coalesce into a single follow-up regardless of how many arrived.
func (e *Engine) drainPending(ctx context.Context, unconditional bool) {
	for ctx.Err() == nil {
		e.pendMu.Lock()
		run := unconditional || e.pendRefresh || e.pendClear
		clear := e.pendClear
		e.pendRefresh, e.pendClear = false, false
		e.pendMu.Unlock()

		if !run {
			return
		}
		if clear {
			e.tracker.Clear()
			e.store.Reset()
			e.latch.Reset()
			logging.Info("cache cleared")
		}
		e.runCycle(ctx)
		unconditional = false
	}
}

type cycleResult struct {
	items     []feed.Item
	activeURL string
	err       error
}

// runCycle fetches every enabled feed concurrently, merges the results
// serially, persists the snapshots, and evaluates the headline latch once
// over the full merged set.
func (e *Engine) runCycle(ctx context.Context) {
	started := time.Now()
	sources := e.registry.Enabled()
	results := make([]cycleResult, len(sources))

	var g errgroup.Group
	g.SetLimit(e.opts.MaxConcurrent)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = e.fetchFeed(ctx, src)
			return nil // per-feed failures land in results, never abort the cycle
		})
	}
	_ = g.Wait()

	okCount := 0
	for i, res := range results {
		src := sources[i]
		now := time.Now()

		if res.err != nil {
			// Cache entry stays untouched: stale data beats none.
			logging.Warn("feed failed", "feed", src.Name, "error", res.err)
			e.statuses.Record(feed.Status{
				FeedID:      src.ID,
				Name:        src.Name,
				Category:    src.Category,
				State:       feed.StateFail,
				ActiveURL:   res.activeURL,
				LastError:   res.err.Error(),
				LastAttempt: now,
			})
			continue
		}

		fresh := e.tracker.FilterAndMark(res.items)
		flagNew(res.items, fresh)
		e.store.Upsert(src.ID, res.items)
		e.statuses.Record(feed.Status{
			FeedID:      src.ID,
			Name:        src.Name,
			Category:    src.Category,
			State:       feed.StateOK,
			ItemCount:   len(res.items),
			ActiveURL:   res.activeURL,
			LastAttempt: now,
		})
		okCount++
		logging.Debug("feed refreshed", "feed", src.Name, "items", len(res.items), "new", len(fresh))
	}

	merged := e.rebuildMerged(sources)

	e.mu.Lock()
	e.merged = merged
	first := !e.firstCycleDone
	e.firstCycleDone = true
	e.mu.Unlock()

	degraded := false
	if err := e.tracker.Persist(); err != nil {
		logging.Error("seen snapshot not persisted", "error", err)
		degraded = true
	}
	if err := e.store.Persist(); err != nil {
		logging.Error("cache snapshot not persisted", "error", err)
		degraded = true
	}
	e.mu.Lock()
	e.degraded = degraded
	e.mu.Unlock()

	if newest, changed := e.latch.Evaluate(merged); changed {
		e.notify(newest)
		if e.speaker != nil && (!first || e.opts.SpeakOnStart) {
			e.speaker.Say(speech.Announcement(newest, e.opts.IncludeSummary))
		}
	}

	logging.Info("cycle complete",
		"feeds", len(sources), "ok", okCount, "items", len(merged),
		"elapsed", time.Since(started).Round(time.Millisecond))
}

// fetchFeed runs one feed's pipeline, trying each configured URL in order
// until one fetches and parses.
func (e *Engine) fetchFeed(ctx context.Context, src feed.Source) cycleResult {
	var lastErr error
	for _, url := range src.URLs {
		raw, err := e.fetcher.Fetch(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		items, err := e.parser.Parse(raw, src)
		if err != nil {
			lastErr = err
			continue
		}
		return cycleResult{items: items, activeURL: url}
	}
	if lastErr == nil {
		lastErr = errors.New("no URLs configured")
	}
	return cycleResult{activeURL: src.URL(), err: fmt.Errorf("%s: %w", src.Name, lastErr)}
}

// flagNew marks the items whose IDs came back from the dedup filter.
func flagNew(items []feed.Item, fresh []feed.Item) {
	if len(fresh) == 0 {
		return
	}
	freshIDs := make(map[string]bool, len(fresh))
	for _, it := range fresh {
		freshIDs[it.ID] = true
	}
	for i := range items {
		items[i].New = freshIDs[items[i].ID]
	}
}

// rebuildMerged assembles the cross-feed item set from the cache, which at
// this point holds fresh entries for feeds that succeeded and last-good
// entries for feeds that failed.
func (e *Engine) rebuildMerged(sources []feed.Source) []feed.Item {
	var merged []feed.Item
	for _, src := range sources {
		merged = append(merged, e.store.Get(src.ID).Items...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Published.After(merged[j].Published)
	})

	if len(merged) > e.opts.MaxItemsTotal {
		merged = merged[:e.opts.MaxItemsTotal]
	}
	return merged
}

// notify emits a new-newest-headline event without ever blocking the
// cycle; a consumer that has fallen behind misses events.
func (e *Engine) notify(it feed.Item) {
	select {
	case e.notifications <- it:
	default:
	}
}
