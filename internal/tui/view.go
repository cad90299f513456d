package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"LinguaNews/internal/domain"
	"LinguaNews/internal/leveled"
	"LinguaNews/internal/store"
)

const summaryLimit = 120

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bodyStyle     = lipgloss.NewStyle().Width(76)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func (m Model) View() string {
	if m.screen == screenDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	news := m.newsState()
	settings := m.app.Store.Settings()

	var b strings.Builder
	b.WriteString(titleStyle.Render("LinguaNews"))
	b.WriteString(headerStyle.Render(fmt.Sprintf("  level %s · notifications %s\n\n",
		settings.Level, onOff(settings.NotificationsEnabled))))

	b.WriteString(m.statusLine(news))

	items := m.visibleItems()
	if len(items) == 0 && news.Status != store.StatusLoading {
		b.WriteString(dimStyle.Render("No stories to show.\n"))
	}

	level := settings.Level
	for i, item := range items {
		cursor := "  "
		line := fmt.Sprintf("[%s] %s", companyTag(item), item.Title)
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		} else {
			line = tagStyle.Render("["+companyTag(item)+"] ") + item.Title
		}
		b.WriteString(cursor + line + "\n")

		summary := leveled.Truncate(leveled.Plaintext(leveled.ContentFor(item, level)), summaryLimit)
		b.WriteString(dimStyle.Render("    "+summary) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(
		"↑/↓ select · enter open · r sync · l level · n notifications · 1-6 sources · q quit"))
	b.WriteString("\n" + m.sourcesLine(settings))
	return b.String()
}

func (m Model) viewDetail() string {
	settings := m.app.Store.Settings()
	level := settings.Level

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.detail.Title) + "\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %s · your level %s\n\n",
		companyTag(m.detail), shortDate(m.detail), level)))

	text := leveled.Plaintext(leveled.ContentFor(m.detail, level))
	if text == "" {
		text = dimStyle.Render("No text available for this story.")
	}
	b.WriteString(bodyStyle.Render(text) + "\n\n")

	play := "s play"
	if m.app.Speech.Playing() {
		play = "s stop " + spinnerStyle.Render(m.spin.View())
	}
	b.WriteString(dimStyle.Render(play+" · l level · esc back · q quit") + "\n")
	return b.String()
}

func (m Model) statusLine(news store.NewsState) string {
	switch news.Status {
	case store.StatusLoading:
		return m.spin.View() + headerStyle.Render(" syncing…\n\n")
	case store.StatusFailed:
		message := news.Err
		if message == "" {
			message = "Please try again."
		}
		// Stale items stay visible below the failure banner.
		return errorStyle.Render("Unable to load news: "+message) + "\n\n"
	}
	return ""
}

func (m Model) sourcesLine(settings domain.Settings) string {
	parts := make([]string, 0, len(domain.Sources()))
	for i, src := range domain.Sources() {
		label := fmt.Sprintf("%d %s", i+1, src)
		if settings.SourceEnabled(src) {
			parts = append(parts, tagStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label+" (off)"))
		}
	}
	return dimStyle.Render("sources: ") + strings.Join(parts, dimStyle.Render(" · "))
}

func companyTag(item domain.Article) string {
	if item.Company == "" {
		return "AI"
	}
	return item.Company
}

func shortDate(item domain.Article) string {
	if t, ok := item.DisplayTime(); ok {
		return t.Format("Jan 2")
	}
	return "—"
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
