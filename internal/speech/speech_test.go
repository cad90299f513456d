package speech

import (
	"context"
	"sync"
	"testing"
	"time"
)

// blockingEngine plays until its context is cancelled and records every
// Stop call.
type blockingEngine struct {
	mu       sync.Mutex
	started  chan string
	stops    int
	lastText string
}

func newBlockingEngine() *blockingEngine {
	return &blockingEngine{started: make(chan string, 4)}
}

func (e *blockingEngine) Speak(ctx context.Context, text string) error {
	e.mu.Lock()
	e.lastText = text
	e.mu.Unlock()
	e.started <- text
	<-ctx.Done()
	return ctx.Err()
}

func (e *blockingEngine) Stop(ctx context.Context) error {
	e.mu.Lock()
	e.stops++
	e.mu.Unlock()
	return nil
}

func (e *blockingEngine) stopCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stops
}

func waitStarted(t *testing.T, e *blockingEngine) string {
	t.Helper()
	select {
	case text := <-e.started:
		return text
	case <-time.After(2 * time.Second):
		t.Fatal("playback never started")
		return ""
	}
}

func waitStopped(t *testing.T, s *Session) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Playing() {
		if time.Now().After(deadline) {
			t.Fatal("session still playing")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestToggleStartsAndStops(t *testing.T) {
	t.Parallel()

	engine := newBlockingEngine()
	s := NewSession(engine, nil)

	if !s.Toggle("hello") {
		t.Fatal("first toggle should start playback")
	}
	if got := waitStarted(t, engine); got != "hello" {
		t.Fatalf("engine got %q", got)
	}
	if !s.Playing() {
		t.Fatal("session should report playing")
	}

	if s.Toggle("hello") {
		t.Fatal("second toggle should stop playback")
	}
	waitStopped(t, s)
	if engine.stopCount() == 0 {
		t.Fatal("engine Stop was never called")
	}
}

func TestToggleEmptyTextIsNoop(t *testing.T) {
	t.Parallel()

	s := NewSession(newBlockingEngine(), nil)
	if s.Toggle("") {
		t.Fatal("empty text must not start playback")
	}
}

func TestNilEngineSessionIsInert(t *testing.T) {
	t.Parallel()

	s := NewSession(nil, nil)
	if s.Toggle("hello") {
		t.Fatal("nil engine must not play")
	}
	if err := s.Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("nil engine Speak: %v", err)
	}
	s.Stop()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestStopReleasesPlayback(t *testing.T) {
	t.Parallel()

	engine := newBlockingEngine()
	s := NewSession(engine, nil)

	s.Toggle("story text")
	waitStarted(t, engine)

	s.Stop()
	waitStopped(t, s)
	if engine.stopCount() != 1 {
		t.Fatalf("expected one engine stop, got %d", engine.stopCount())
	}

	// Stop in the stopped state is harmless but still reaches the engine.
	s.Stop()
	if engine.stopCount() != 2 {
		t.Fatalf("expected second engine stop, got %d", engine.stopCount())
	}
}

func TestSpeakBlocksUntilCancelled(t *testing.T) {
	t.Parallel()

	engine := newBlockingEngine()
	s := NewSession(engine, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Speak(ctx, "long article") }()

	waitStarted(t, engine)
	if !s.Playing() {
		t.Fatal("Speak should mark the session playing")
	}

	cancel()
	select {
	case err := <-done:
		// Cancellation is a normal stop.
		if err != nil {
			t.Fatalf("Speak returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Speak did not return after cancel")
	}
	waitStopped(t, s)
}
