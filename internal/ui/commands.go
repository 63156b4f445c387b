package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dyike/widgetchat/internal/models"
)

// Messages produced by async work and by the chat state subscriptions.

type sessionsLoadedMsg struct {
	sessions []models.ChatSession
	err      error
}

type sessionCreatedMsg struct {
	err error
}

type sessionSelectedMsg struct {
	err error
}

type sessionDeletedMsg struct {
	err error
}

// sendResultMsg carries the outcome of one chat turn. text is the composed
// input, kept so a failed send can be restored for resubmission.
type sendResultMsg struct {
	gen  int
	text string
	err  error
}

// refreshDoneMsg is the outcome of widget refresh + message re-fetch.
type refreshDoneMsg struct {
	gen      int
	widgetID string
	err      error
}

// sessionChangedMsg and messagesChangedMsg are bridged from the chat
// service's observable cells onto the bubbletea loop.
type sessionChangedMsg struct {
	session *models.ChatSession
}

type messagesChangedMsg struct {
	messages []models.Message
}

// listenForUpdates pulls the next bridged state notification. Re-armed
// after every received message.
func listenForUpdates(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) loadSessionsCmd() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		sessions, err := m.chatSvc.ListSessions(ctx)
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func (m *Model) createSessionCmd(title string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_, err := m.chatSvc.CreateSession(ctx, title)
		return sessionCreatedMsg{err: err}
	}
}

func (m *Model) selectSessionCmd(session *models.ChatSession) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := m.chatSvc.SelectSession(ctx, session)
		return sessionSelectedMsg{err: err}
	}
}

func (m *Model) deleteSessionCmd(sessionID int) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := m.chatSvc.DeleteAndReselect(ctx, sessionID)
		return sessionDeletedMsg{err: err}
	}
}

func (m *Model) sendMessageCmd(text string, gen int) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_, err := m.chatSvc.SendMessage(ctx, text)
		return sendResultMsg{gen: gen, text: text, err: err}
	}
}

// refreshWidgetCmd asks the server to recompute the widget, then re-fetches
// the current session's messages so the new content lands in local state.
func (m *Model) refreshWidgetCmd(widgetID string, force bool, gen int) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := m.widgetSvc.Refresh(ctx, widgetID, force); err != nil {
			return refreshDoneMsg{gen: gen, widgetID: widgetID, err: err}
		}
		err := m.chatSvc.RefreshMessages(ctx)
		return refreshDoneMsg{gen: gen, widgetID: widgetID, err: err}
	}
}

// bridgeState subscribes to the chat service cells and forwards every
// notification onto the update channel.
func (m *Model) bridgeState() {
	m.subs = append(m.subs,
		m.chatSvc.Session().Subscribe(func(s *models.ChatSession) {
			select {
			case m.updates <- sessionChangedMsg{session: s}:
			case <-m.ctx.Done():
			}
		}),
		m.chatSvc.Messages().Subscribe(func(msgs []models.Message) {
			select {
			case m.updates <- messagesChangedMsg{messages: msgs}:
			case <-m.ctx.Done():
			}
		}),
	)
}

func (m *Model) teardown() {
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.subs = nil
	m.cancel()
}
