// Package store is the single source of truth for application state. It
// holds two independent slices, news and settings, mutated only through
// named operations and observed through value-copy snapshots.
package store

import (
	"context"
	"log/slog"
	"sync"

	"LinguaNews/internal/domain"
)

// Status tracks the tri-state fetch lifecycle of the news slice.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Fetcher pulls the full article collection from the backend.
type Fetcher interface {
	FetchList(ctx context.Context) ([]domain.Article, error)
}

// NewsState is the news slice: server-ordered items, the fetch status,
// and the last failure message. Err is set only while Status is failed.
type NewsState struct {
	Items  []domain.Article
	Status Status
	Err    string
}

// Store serializes all slice mutations behind one mutex and signals
// subscribers after every commit.
type Store struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu       sync.Mutex
	news     NewsState
	settings domain.Settings
	loadSeq  uint64
	subs     []chan struct{}
}

// New builds a store with default settings and an idle news slice.
func New(fetcher Fetcher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		fetcher:  fetcher,
		logger:   logger,
		news:     NewsState{Status: StatusIdle},
		settings: domain.DefaultSettings(),
	}
}

// Subscribe returns a coalescing signal channel that fires after every
// committed mutation. The channel is buffered and never closed; it lives
// as long as the store does.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// News returns a copy of the news slice.
func (s *Store) News() NewsState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.news
	out.Items = append([]domain.Article(nil), s.news.Items...)
	return out
}

// Settings returns a deep copy of the settings slice.
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Load runs one fetch cycle: it synchronously marks the slice loading,
// clears the previous error, fetches, and commits the terminal state.
// Every call carries a monotonically increasing token; a completion
// whose token is no longer the latest issued one is discarded, so
// overlapping loads resolve to the most recently requested fetch rather
// than whichever response happens to land last.
func (s *Store) Load(ctx context.Context) error {
	token := s.beginLoad()

	items, err := s.fetcher.FetchList(ctx)
	s.completeLoad(token, items, err)
	return err
}

func (s *Store) beginLoad() uint64 {
	s.mu.Lock()
	s.loadSeq++
	token := s.loadSeq
	s.news.Status = StatusLoading
	s.news.Err = ""
	s.mu.Unlock()

	s.notify()
	return token
}

func (s *Store) completeLoad(token uint64, items []domain.Article, err error) {
	s.mu.Lock()
	if token != s.loadSeq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale load completion", "token", token, "latest", s.loadSeq)
		return
	}

	if err != nil {
		s.news.Status = StatusFailed
		s.news.Err = err.Error()
		// Items stay untouched: stale data remains visible during a
		// failed retry.
	} else {
		s.news.Status = StatusSucceeded
		s.news.Items = items
	}
	s.mu.Unlock()

	s.notify()
}

// Seed installs cached articles without touching the fetch lifecycle:
// the slice stays idle and a later Load replaces the items wholesale.
func (s *Store) Seed(items []domain.Article) {
	s.mu.Lock()
	if s.news.Status == StatusIdle && len(s.news.Items) == 0 {
		s.news.Items = items
	}
	s.mu.Unlock()

	s.notify()
}

// SetLevel replaces the reading level.
func (s *Store) SetLevel(level domain.Level) {
	s.mu.Lock()
	s.settings.Level = level.Normalize()
	s.mu.Unlock()

	s.notify()
}

// SetNotificationsEnabled flips the daily notification toggle.
func (s *Store) SetNotificationsEnabled(enabled bool) {
	s.mu.Lock()
	s.settings.NotificationsEnabled = enabled
	s.mu.Unlock()

	s.notify()
}

// SetNewsSources merges the given flags into the per-source map; keys
// absent from the argument keep their prior values.
func (s *Store) SetNewsSources(flags map[domain.Source]bool) {
	s.mu.Lock()
	for src, enabled := range flags {
		s.settings.NewsSources[src] = enabled
	}
	s.mu.Unlock()

	s.notify()
}

// SetNewsSourceEnabled flips a single source flag.
func (s *Store) SetNewsSourceEnabled(src domain.Source, enabled bool) {
	s.mu.Lock()
	s.settings.NewsSources[src] = enabled
	s.mu.Unlock()

	s.notify()
}

// ReplaceSettings installs a whole settings snapshot, used when seeding
// persisted state at startup.
func (s *Store) ReplaceSettings(settings domain.Settings) {
	s.mu.Lock()
	s.settings = settings.Clone()
	s.mu.Unlock()

	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := append([]chan struct{}(nil), s.subs...)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
