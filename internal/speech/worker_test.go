package speech

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// recordEngine records spoken texts and optionally blocks until released.
type recordEngine struct {
	mu      sync.Mutex
	spoken  []string
	block   chan struct{} // when non-nil, Speak waits for release or ctx
	started chan string   // receives each text as Speak begins
}

func (e *recordEngine) Speak(ctx context.Context, text string) error {
	if e.started != nil {
		e.started <- text
	}
	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	e.mu.Lock()
	e.spoken = append(e.spoken, text)
	e.mu.Unlock()
	return nil
}

func (e *recordEngine) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.spoken...)
}

func TestSaySpeaks(t *testing.T) {
	eng := &recordEngine{}
	w := NewWorker(eng)
	defer w.Shutdown()

	w.Say("NEWS. CBC. Hello.")

	deadline := time.After(2 * time.Second)
	for {
		if got := eng.all(); len(got) == 1 {
			if got[0] != "NEWS. CBC. Hello." {
				t.Fatalf("spoke %q", got[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("nothing spoken within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSayIgnoresEmpty(t *testing.T) {
	eng := &recordEngine{}
	w := NewWorker(eng)
	defer w.Shutdown()

	w.Say("   ")
	time.Sleep(50 * time.Millisecond)
	if got := eng.all(); len(got) != 0 {
		t.Fatalf("spoke %v for blank input", got)
	}
}

func TestSayCapsLength(t *testing.T) {
	eng := &recordEngine{}
	w := NewWorker(eng)
	defer w.Shutdown()

	w.Say(strings.Repeat("x", maxSpeakLen+500))

	deadline := time.After(2 * time.Second)
	for {
		if got := eng.all(); len(got) == 1 {
			if n := len([]rune(got[0])); n > maxSpeakLen {
				t.Fatalf("spoke %d runes, want <= %d", n, maxSpeakLen)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("nothing spoken within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSaySupersedesQueued(t *testing.T) {
	eng := &recordEngine{
		block:   make(chan struct{}),
		started: make(chan string, 8),
	}
	w := NewWorker(eng)
	defer w.Shutdown()

	w.Say("first")
	<-eng.started // first is now in flight

	// These queue behind the in-flight utterance; each supersedes the last.
	w.Say("second")
	w.Say("third")
	w.Say("fourth")

	close(eng.block) // let playback proceed

	select {
	case text := <-eng.started:
		if text != "fourth" {
			t.Fatalf("after first, spoke %q, want fourth (second and third superseded)", text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nothing spoken after the in-flight utterance finished")
	}

	time.Sleep(50 * time.Millisecond)
	for _, s := range eng.all() {
		if s == "second" || s == "third" {
			t.Fatalf("superseded utterance %q was spoken", s)
		}
	}
}

func TestStopCancelsInFlight(t *testing.T) {
	eng := &recordEngine{
		block:   make(chan struct{}),
		started: make(chan string, 8),
	}
	w := NewWorker(eng)
	defer w.Shutdown()

	w.Say("long announcement")
	<-eng.started // in flight and blocked

	w.Stop()

	// Speak returns via ctx.Done, so nothing lands in spoken.
	deadline := time.After(2 * time.Second)
	for {
		if len(eng.all()) == 0 {
			// Worker must still be alive after a stop.
			w.Say("after stop")
			select {
			case text := <-eng.started:
				if text != "after stop" {
					t.Fatalf("started %q after stop", text)
				}
				return
			case <-deadline:
				t.Fatal("worker dead after stop")
			}
		}
		select {
		case <-deadline:
			t.Fatal("cancelled utterance completed anyway")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestShutdownStopsWorker(t *testing.T) {
	eng := &recordEngine{}
	w := NewWorker(eng)
	w.Shutdown()

	// Harmless after shutdown.
	w.Say("into the void")
	time.Sleep(50 * time.Millisecond)
	if got := eng.all(); len(got) != 0 {
		t.Fatalf("spoke %v after shutdown", got)
	}
}
