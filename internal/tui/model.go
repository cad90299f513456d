// Package tui renders the store in the terminal: a list of articles at
// the reader's level, a detail view with speech playback, and toggles
// for level, sources, and the daily notification.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"LinguaNews/internal/app"
	"LinguaNews/internal/domain"
	"LinguaNews/internal/leveled"
	"LinguaNews/internal/store"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

type (
	storeChangedMsg struct{}
	syncDoneMsg     struct{ err error }
	notifyDoneMsg   struct{ err error }
)

// Model is the root Bubble Tea model. All state it renders comes from
// store snapshots; its own fields are navigation only.
type Model struct {
	app     *app.Application
	updates <-chan struct{}
	spin    spinner.Model

	screen screen
	cursor int
	detail domain.Article
	width  int
}

// New builds the root model around a composed application.
func New(application *app.Application) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		app:     application,
		updates: application.Store.Subscribe(),
		spin:    sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.syncCmd(), m.waitCmd())
}

func (m Model) waitCmd() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		<-updates
		return storeChangedMsg{}
	}
}

func (m Model) syncCmd() tea.Cmd {
	application := m.app
	return func() tea.Msg {
		return syncDoneMsg{err: application.Sync(context.Background())}
	}
}

func (m Model) toggleNotificationsCmd() tea.Cmd {
	application := m.app
	enabled := application.Store.Settings().NotificationsEnabled
	return func() tea.Msg {
		if enabled {
			application.DisableNotifications()
			return notifyDoneMsg{}
		}
		return notifyDoneMsg{err: application.EnableNotifications(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case storeChangedMsg:
		m.clampCursor()
		return m, m.waitCmd()

	case syncDoneMsg, notifyDoneMsg:
		// Outcomes land in the store; the view reads them from there.
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.app.Speech.Stop()
		return m, tea.Quit

	case "r":
		return m, m.syncCmd()

	case "l":
		m.app.SetLevel(m.app.Store.Settings().Level.Next())
		return m, nil

	case "n":
		return m, m.toggleNotificationsCmd()
	}

	if m.screen == screenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visibleItems()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case "enter":
		if m.cursor < len(items) {
			m.detail = items[m.cursor]
			m.screen = screenDetail
		}

	default:
		if src, ok := sourceForKey(msg.String()); ok {
			settings := m.app.Store.Settings()
			return m, m.toggleSourceCmd(src, !settings.SourceEnabled(src))
		}
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		// Leaving the viewing context always releases playback.
		m.app.Speech.Stop()
		m.screen = screenList

	case "s", " ":
		level := m.app.Store.Settings().Level
		text := leveled.Plaintext(leveled.ContentFor(m.detail, level))
		m.app.Speech.Toggle(text)
	}

	return m, nil
}

func (m Model) toggleSourceCmd(src domain.Source, enabled bool) tea.Cmd {
	application := m.app
	return func() tea.Msg {
		application.SetSourceEnabled(context.Background(), src, enabled)
		return storeChangedMsg{}
	}
}

// sourceForKey maps the digit row onto the fixed source set.
func sourceForKey(key string) (domain.Source, bool) {
	sources := domain.Sources()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '6' {
		return sources[key[0]-'1'], true
	}
	return "", false
}

// visibleItems filters the fetched collection by the per-source flags.
// The store keeps the full list; filtering is a render concern.
func (m Model) visibleItems() []domain.Article {
	news := m.app.Store.News()
	settings := m.app.Store.Settings()

	out := make([]domain.Article, 0, len(news.Items))
	for _, item := range news.Items {
		if item.Company != "" && !settings.SourceEnabled(domain.Source(item.Company)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (m *Model) clampCursor() {
	if count := len(m.visibleItems()); m.cursor >= count && count > 0 {
		m.cursor = count - 1
	} else if count == 0 {
		m.cursor = 0
	}
}

func (m Model) newsState() store.NewsState {
	return m.app.Store.News()
}
