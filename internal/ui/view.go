package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/widgetchat/internal/models"
)

const sidebarWidth = 32

func (m *Model) View() string {
	if !m.ready {
		return "starting widgetchat..."
	}

	header := titleStyle.Render("WidgetChat") + statusStyle.Render("  "+m.sessionLabel())

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		inputStyle.Width(m.viewport.Width).Render(m.textarea.View()),
		m.statusLine(),
	)

	if m.showSidebar {
		sidebar := lipgloss.NewStyle().
			Width(sidebarWidth).
			Render(m.sessionList.View())
		main = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main)
}

func (m *Model) sessionLabel() string {
	if m.session == nil {
		return "no session"
	}
	if m.session.Title != "" {
		return m.session.Title
	}
	return fmt.Sprintf("session %d", m.session.ID)
}

func (m *Model) statusLine() string {
	if m.sending {
		return statusStyle.Render(m.spinner.View() + " " + m.status)
	}
	if m.status == "" {
		return statusStyle.Render("enter: send · tab: focus · ctrl+n: new session · ctrl+b: sidebar · ctrl+c: quit")
	}
	if m.statusIsErr {
		return errorStyle.Render("✗ " + m.status)
	}
	return statusStyle.Render(m.status)
}

// refreshViewport re-renders the thread into the viewport. Scroll failures
// are cosmetic and ignored.
func (m *Model) refreshViewport(scrollToBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderThread())
	if scrollToBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderThread() string {
	if m.fullscreen != "" {
		if card, ok := m.cards[m.fullscreen]; ok {
			return m.renderFullscreen(card)
		}
	}

	if m.session == nil && len(m.messages) == 0 {
		return cardDimStyle.Render("\n  Start chatting to see weather, stocks, news and banking widgets inline.\n  ctrl+n starts a fresh session.")
	}

	var b strings.Builder
	now := time.Now()
	cardIndex := 0
	for _, message := range m.messages {
		b.WriteString(m.renderMessage(message, now, &cardIndex))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(message models.Message, now time.Time, cardIndex *int) string {
	var b strings.Builder

	role := assistantMsgStyle.Render("assistant")
	if message.Role == models.RoleUser {
		role = userMsgStyle.Render("you")
	}
	stamp := cardDimStyle.Render(formatWhen(message.CreatedAt, now))
	b.WriteString(role + " " + stamp + "\n")
	b.WriteString(msgBodyStyle.Render(message.Content) + "\n")

	for _, w := range message.Widgets {
		card := m.cards[w.ID]
		if card == nil {
			card = &cardState{widget: w}
		}
		selected := *cardIndex == m.selected && m.focus == focusThread
		b.WriteString(m.renderCard(card, selected, now) + "\n")
		*cardIndex++
	}

	return b.String()
}

func (m *Model) renderFullscreen(card *cardState) string {
	body := m.cardBody(card, time.Now())

	if m.showConfig {
		cfg, err := json.MarshalIndent(card.widget.Config, "", "  ")
		if err != nil {
			cfg = []byte("{}")
		}
		body += "\n\n" + cardTitleStyle.Render("Configuration") + "\n" + string(cfg) +
			"\n" + cardDimStyle.Render("edit with: widgetchat widgets config update")
	}

	width := m.viewport.Width - 6
	if width < 20 {
		width = 20
	}
	return cardSelectedStyle.Width(width).Render(
		cardTitleStyle.Render(card.widget.Title)+"\n"+body,
	) + "\n" + cardDimStyle.Render("  esc: back")
}

func formatWhen(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.Sub(t) < 24*time.Hour {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}
