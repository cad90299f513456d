package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"LinguaNews/internal/domain"
	"LinguaNews/internal/leveled"
	"LinguaNews/internal/store"
)

const (
	defaultHour   = 1
	defaultMinute = 0

	notificationTitle = "New AI News arrived."
	fallbackBody      = "No new stories yet. Check back soon."
	bodyLimit         = 140
)

// ErrPermissionDenied reports that the backend refused the permission
// probe; the enable transition silently reverts on it.
var ErrPermissionDenied = errors.New("notification permission denied")

// State is the scheduler's two-state lifecycle.
type State string

const (
	StateDisabled  State = "disabled"
	StateScheduled State = "scheduled"
)

// Snapshot exposes the store reads the scheduler needs to render a body.
type Snapshot interface {
	News() store.NewsState
	Settings() domain.Settings
}

// Scheduler owns the daily notification: Disabled until enabled, then a
// wall-clock loop fires one delivery at the configured local time.
type Scheduler struct {
	notifier Notifier
	state    Snapshot
	logger   *slog.Logger
	hour     int
	minute   int
	now      func() time.Time

	mu         sync.Mutex
	current    State
	scheduleID string
	cancel     context.CancelFunc
}

// NewScheduler starts Disabled with the fixed 01:00 daily trigger.
func NewScheduler(notifier Notifier, state Snapshot, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		notifier: notifier,
		state:    state,
		logger:   logger,
		hour:     defaultHour,
		minute:   defaultMinute,
		now:      time.Now,
		current:  StateDisabled,
	}
}

// State reports the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ScheduleID identifies the active schedule, empty while Disabled.
func (s *Scheduler) ScheduleID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleID
}

// Enable transitions Disabled → Scheduled. It first asks the backend for
// permission; on denial or probe failure the scheduler stays Disabled
// and ErrPermissionDenied is returned so the caller can revert its
// toggle. On grant any previous schedule is cancelled before the new
// daily loop starts.
func (s *Scheduler) Enable(ctx context.Context) error {
	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		s.logger.Warn("notification permission probe failed", "error", err)
		return ErrPermissionDenied
	}
	if !granted {
		s.logger.Info("notification permission denied")
		return ErrPermissionDenied
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.current = StateScheduled
	s.scheduleID = uuid.NewString()
	id := s.scheduleID
	s.mu.Unlock()

	s.logger.Info("daily notification scheduled",
		"schedule_id", id, "hour", s.hour, "minute", s.minute, "channel", ChannelID)

	go s.run(loopCtx)
	return nil
}

// Disable cancels everything unconditionally and returns to Disabled.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = StateDisabled
	s.scheduleID = ""
	s.mu.Unlock()

	s.logger.Info("daily notification cancelled")
}

// SendNow fires a single delivery immediately, outside the daily loop.
func (s *Scheduler) SendNow(ctx context.Context) error {
	return s.deliver(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		next := nextRun(s.now(), s.hour, s.minute)
		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		s.logger.Debug("next notification", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.deliver(ctx); err != nil {
			// Delivery failure is not fatal: the schedule stays armed
			// and tries again the next day.
			s.logger.Warn("notification delivery failed", "error", err)
		}
	}
}

func (s *Scheduler) deliver(ctx context.Context) error {
	s.mu.Lock()
	id := s.scheduleID
	s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}

	return s.notifier.Deliver(ctx, Notification{
		ID:      id,
		Channel: ChannelID,
		Title:   notificationTitle,
		Body:    s.Body(),
	})
}

// Body renders the delivery text: the newest article's leveled content,
// markup-stripped and truncated, or the static fallback when the
// collection is empty.
func (s *Scheduler) Body() string {
	news := s.state.News()
	if len(news.Items) == 0 {
		return fallbackBody
	}

	level := s.state.Settings().Level
	text := leveled.Plaintext(leveled.ContentFor(news.Items[0], level))
	if text == "" {
		return fallbackBody
	}
	return leveled.Truncate(text, bodyLimit)
}

// nextRun resolves the next wall-clock occurrence of hh:mm after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
