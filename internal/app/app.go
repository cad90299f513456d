// Package app wires configuration to the store, the API clients, the
// notification scheduler, and the speech session.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"LinguaNews/internal/config"
	"LinguaNews/internal/domain"
	"LinguaNews/internal/logging"
	"LinguaNews/internal/newsapi"
	"LinguaNews/internal/notify"
	"LinguaNews/internal/settingsapi"
	"LinguaNews/internal/speech"
	"LinguaNews/internal/storage"
	"LinguaNews/internal/store"
)

// Application is the composed client: one store, one news client, one
// notification scheduler, one speech session, and an optional cache and
// source-settings sync.
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	Store         *store.Store
	News          *newsapi.Client
	Notifications *notify.Scheduler
	Speech        *speech.Session

	sources *settingsapi.Client
	cache   *storage.Cache
}

// New validates the configuration and builds a runnable instance. The
// cache and source sync are optional; the news endpoint is not.
func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.New(cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	newsClient, err := newsapi.NewClient(cfg.News.Endpoint, nil, logger.With("component", "newsapi"))
	if err != nil {
		return nil, fmt.Errorf("news client: %w", err)
	}

	st := store.New(newsClient, logger.With("component", "store"))

	var cache *storage.Cache
	if !cfg.Cache.Disabled {
		cache, err = storage.Open(cfg.Cache.Path)
		if err != nil {
			// A broken cache degrades to a memory-only session.
			logger.Warn("cache unavailable", "path", cfg.Cache.Path, "error", err)
			cache = nil
		}
	}

	var notifier notify.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = notify.NewTelegramNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	} else {
		notifier = notify.NewLogNotifier(logger.With("component", "notifier"))
	}

	a := &Application{
		cfg:           cfg,
		logger:        logger,
		Store:         st,
		News:          newsClient,
		Notifications: notify.NewScheduler(notifier, st, logger.With("component", "notify")),
		Speech:        speech.NewSession(buildEngine(cfg.Speech), logger.With("component", "speech")),
		sources:       settingsapi.NewClient(cfg.Sources.Endpoint, nil),
		cache:         cache,
	}

	a.seed(context.Background())
	return a, nil
}

func buildEngine(cfg config.SpeechConfig) speech.Engine {
	switch cfg.Engine {
	case "http":
		return speech.NewHTTPEngine(cfg.Endpoint, cfg.APIKey)
	case "command":
		return speech.NewCommandEngine(cfg.Command, cfg.Args...)
	}
	return nil
}

// seed restores persisted settings and the last article snapshot, then
// falls back to the server for source flags when nothing local exists.
func (a *Application) seed(ctx context.Context) {
	settings, found, err := a.cache.LoadSettings(ctx)
	if err != nil {
		a.logger.Warn("load cached settings", "error", err)
	}
	if found {
		a.Store.ReplaceSettings(settings)
	} else if a.sources != nil && a.cfg.Auth.UserID != "" {
		if flags, err := a.sources.Fetch(ctx, a.cfg.Auth.UserID); err != nil {
			a.logger.Warn("fetch source settings", "error", err)
		} else if len(flags) > 0 {
			a.Store.SetNewsSources(flags)
		}
	}

	if items, err := a.cache.Articles(ctx); err != nil {
		a.logger.Warn("load cached articles", "error", err)
	} else if len(items) > 0 {
		a.Store.Seed(items)
	}

	if a.Store.Settings().NotificationsEnabled {
		if err := a.EnableNotifications(ctx); err != nil {
			a.logger.Info("notifications stayed off after restart")
		}
	}
}

// Sync runs one fetch cycle and refreshes the cache on success.
func (a *Application) Sync(ctx context.Context) error {
	if err := a.Store.Load(ctx); err != nil {
		return err
	}

	if err := a.cache.ReplaceArticles(ctx, a.Store.News().Items); err != nil {
		a.logger.Warn("cache articles", "error", err)
	}
	return nil
}

// SetLevel updates the reading level and persists the settings slice.
func (a *Application) SetLevel(level domain.Level) {
	a.Store.SetLevel(level)
	a.persistSettings()
}

// SetSourceEnabled flips one source flag locally, persists it, and
// pushes the full flag set to the backend on a best-effort basis.
func (a *Application) SetSourceEnabled(ctx context.Context, src domain.Source, enabled bool) {
	a.Store.SetNewsSourceEnabled(src, enabled)
	a.persistSettings()

	if a.sources == nil || a.cfg.Auth.UserID == "" {
		return
	}
	settings := a.Store.Settings()
	if err := a.sources.Save(ctx, a.cfg.Auth.UserID, a.cfg.Auth.Token, settings.NewsSources); err != nil {
		// Local state stays authoritative; the write is fire-and-forget.
		a.logger.Warn("sync source settings", "error", err)
	}
}

// EnableNotifications runs the Disabled → Scheduled transition. On
// permission denial the toggle reverts and the returned error is
// ErrPermissionDenied; nothing propagates further.
func (a *Application) EnableNotifications(ctx context.Context) error {
	if err := a.Notifications.Enable(ctx); err != nil {
		a.Store.SetNotificationsEnabled(false)
		a.persistSettings()
		return err
	}

	a.Store.SetNotificationsEnabled(true)
	a.persistSettings()
	return nil
}

// DisableNotifications cancels the schedule unconditionally.
func (a *Application) DisableNotifications() {
	a.Notifications.Disable()
	a.Store.SetNotificationsEnabled(false)
	a.persistSettings()
}

func (a *Application) persistSettings() {
	if err := a.cache.SaveSettings(context.Background(), a.Store.Settings()); err != nil {
		a.logger.Warn("persist settings", "error", err)
	}
}

// Close releases playback, the schedule, and the cache.
func (a *Application) Close() error {
	a.Speech.Stop()
	a.Notifications.Disable()
	return a.cache.Close()
}
