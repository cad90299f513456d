// Package speech reads article text aloud through a pluggable engine.
// Playback is the only cancellable operation in the app: a Session ties
// the running engine to a scope and guarantees it is stopped on every
// exit path, including teardown of the viewing context.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Language used for synthesis.
const Language = "en-US"

// Engine synthesizes and plays text. Speak blocks until playback ends or
// ctx is cancelled; Stop aborts any playback the engine still owns.
type Engine interface {
	Speak(ctx context.Context, text string) error
	Stop(ctx context.Context) error
}

// Session wraps an Engine with toggle semantics and scoped release.
type Session struct {
	engine Engine
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	playing bool
	gen     uint64
}

// NewSession wires an engine; a nil engine yields a session that never
// plays, so callers need no nil checks.
func NewSession(engine Engine, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{engine: engine, logger: logger}
}

// Playing reports whether a playback is currently running.
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Toggle starts playback of text, or stops the current one when already
// playing. It returns whether the session is playing afterwards.
func (s *Session) Toggle(text string) bool {
	if s.Playing() {
		s.Stop()
		return false
	}
	if text == "" || s.engine == nil {
		return false
	}
	s.start(text)
	return true
}

func (s *Session) start(text string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.playing = true
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go func() {
		err := s.engine.Speak(ctx, text)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("speech playback failed", "error", err)
		}

		s.mu.Lock()
		if s.gen == gen {
			s.playing = false
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()
}

// Speak plays text on the calling goroutine, blocking until the engine
// finishes or ctx is cancelled. Cancellation is a normal stop, not an
// error.
func (s *Session) Speak(ctx context.Context, text string) error {
	if s.engine == nil || text == "" {
		return nil
	}

	s.mu.Lock()
	s.playing = true
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	err := s.engine.Speak(ctx, text)

	s.mu.Lock()
	if s.gen == gen {
		s.playing = false
	}
	s.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop aborts playback. Safe to call at any time, in any state.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.playing = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if s.engine != nil {
		stopCtx, done := context.WithTimeout(context.Background(), stopTimeout)
		defer done()
		if err := s.engine.Stop(stopCtx); err != nil {
			s.logger.Debug("speech stop", "error", err)
		}
	}
}

// Close releases the session; the engine must not be left speaking after
// the owning scope is gone.
func (s *Session) Close() error {
	s.Stop()
	return nil
}
