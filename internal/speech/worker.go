package speech

import (
	"context"
	"strings"
	"sync"

	"github.com/ve7ltx/rssdos/internal/logging"
)

// maxSpeakLen caps utterance length in runes; anything longer gets cut
// mid-sentence anyway once the listener loses patience.
const maxSpeakLen = 2500

// Worker serializes utterances through an Engine on a background
// goroutine. Say and Stop never block on audio.
type Worker struct {
	engine Engine

	queue  chan string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	cancelCur context.CancelFunc // cancels the in-flight utterance
}

// NewWorker starts a Worker speaking through engine.
func NewWorker(engine Engine) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		engine: engine,
		queue:  make(chan string, 4),
		ctx:    ctx,
		cancel: cancel,
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Say queues text for announcement. Anything still waiting in the queue is
// superseded; the utterance currently playing finishes unless Stop is
// called.
func (w *Worker) Say(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if runes := []rune(text); len(runes) > maxSpeakLen {
		text = string(runes[:maxSpeakLen-1]) + "…"
	}

	w.drain()
	select {
	case w.queue <- text:
	default:
	}
}

// Stop cancels the in-flight utterance immediately and drops everything
// queued behind it.
func (w *Worker) Stop() {
	w.drain()

	w.mu.Lock()
	if w.cancelCur != nil {
		w.cancelCur()
	}
	w.mu.Unlock()
}

// Shutdown stops playback and waits for the worker goroutine to exit.
func (w *Worker) Shutdown() {
	w.cancel()
	w.drain()
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case text := <-w.queue:
			ctx, cancel := context.WithCancel(w.ctx)
			w.mu.Lock()
			w.cancelCur = cancel
			w.mu.Unlock()

			err := w.engine.Speak(ctx, text)

			w.mu.Lock()
			w.cancelCur = nil
			w.mu.Unlock()
			cancel()

			if err != nil && w.ctx.Err() == nil && ctx.Err() == nil {
				logging.Warn("speech failed", "error", err)
			}
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case <-w.queue:
		default:
			return
		}
	}
}
