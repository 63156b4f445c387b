// Package ui is the interactive chat surface: a bubbletea program rendering
// the session sidebar, message thread with inline widget cards, and the
// input box. All remote work runs in commands; the update loop is the only
// writer of view state.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dyike/widgetchat/internal/chat"
	"github.com/dyike/widgetchat/internal/models"
	"github.com/dyike/widgetchat/internal/widget"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusThread
	focusSessions
)

// cardStatus is the render state machine of one widget card:
// idle -> loading -> {idle, error}. Loading is entered on a user refresh;
// error only clears on another refresh attempt.
type cardStatus int

const (
	cardIdle cardStatus = iota
	cardLoading
	cardError
)

type cardState struct {
	widget models.Widget
	status cardStatus
	errMsg string
}

// Widget actions dispatched from the thread view.
const (
	actionRefresh    = "refresh"
	actionConfigure  = "configure"
	actionFullscreen = "fullscreen"
)

// sessionItem adapts a ChatSession for the bubbles list.
type sessionItem struct {
	session models.ChatSession
}

func (i sessionItem) Title() string {
	if i.session.Title != "" {
		return i.session.Title
	}
	return fmt.Sprintf("Session %d", i.session.ID)
}

func (i sessionItem) Description() string {
	return i.session.UpdatedAt.Format("2006-01-02 15:04")
}

func (i sessionItem) FilterValue() string {
	return fmt.Sprintf("%d %s", i.session.ID, i.session.Title)
}

// Model is the bubbletea model for the chat screen.
type Model struct {
	chatSvc   *chat.Service
	widgetSvc *widget.Service
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	textarea    textarea.Model
	viewport    viewport.Model
	spinner     spinner.Model
	sessionList list.Model

	updates chan tea.Msg
	subs    []*chat.Subscription

	session  *models.ChatSession
	messages []models.Message

	cards     map[string]*cardState
	cardOrder []string
	selected  int

	fullscreen string
	showConfig bool

	focus       focusArea
	showSidebar bool
	sending     bool
	gen         int

	status      string
	statusIsErr bool

	width  int
	height int
	ready  bool
}

// NewModel wires the chat and widget services into the TUI.
func NewModel(chatSvc *chat.Service, widgetSvc *widget.Service, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about weather, stocks, news, your accounts..."
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	delegate := list.NewDefaultDelegate()
	sessionList := list.New(nil, delegate, 30, 10)
	sessionList.Title = "Sessions"
	sessionList.SetShowHelp(false)
	sessionList.SetFilteringEnabled(false)
	sessionList.SetShowStatusBar(false)

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		chatSvc:     chatSvc,
		widgetSvc:   widgetSvc,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		textarea:    ta,
		spinner:     sp,
		sessionList: sessionList,
		updates:     make(chan tea.Msg, 32),
		cards:       map[string]*cardState{},
		selected:    -1,
		showSidebar: true,
	}
	m.bridgeState()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		listenForUpdates(m.updates),
		m.loadSessionsCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionChangedMsg:
		m.session = msg.session
		if m.session == nil {
			m.fullscreen = ""
			m.showConfig = false
		}
		return m, listenForUpdates(m.updates)

	case messagesChangedMsg:
		m.messages = msg.messages
		m.rebuildCards()
		m.refreshViewport(true)
		return m, listenForUpdates(m.updates)

	case sessionsLoadedMsg:
		if msg.err != nil {
			m.setError("load sessions: " + msg.err.Error())
			return m, nil
		}
		items := make([]list.Item, len(msg.sessions))
		for i, s := range msg.sessions {
			items[i] = sessionItem{session: s}
		}
		m.sessionList.SetItems(items)
		return m, nil

	case sessionCreatedMsg:
		if msg.err != nil {
			m.setError("create session: " + msg.err.Error())
			return m, nil
		}
		m.setStatus("new session started")
		return m, m.loadSessionsCmd()

	case sessionSelectedMsg:
		if msg.err != nil {
			m.setError("open session: " + msg.err.Error())
		}
		return m, nil

	case sessionDeletedMsg:
		if msg.err != nil {
			// No optimistic removal: the list stays as-is on failure.
			m.setError("delete session: " + msg.err.Error())
			return m, nil
		}
		m.setStatus("session deleted")
		return m, m.loadSessionsCmd()

	case sendResultMsg:
		m.sending = false
		if msg.gen != m.gen {
			// The view moved to another session while the send was in
			// flight; don't touch the input or the status line.
			return m, nil
		}
		if msg.err != nil {
			// Keep the user's text so it can be resubmitted as-is.
			m.textarea.SetValue(msg.text)
			m.setError(msg.err.Error())
			return m, nil
		}
		m.setStatus("")
		return m, m.loadSessionsCmd()

	case refreshDoneMsg:
		if msg.gen != m.gen {
			// A stale completion for a superseded view; drop it.
			return m, nil
		}
		card, ok := m.cards[msg.widgetID]
		if !ok {
			return m, nil
		}
		if msg.err != nil {
			card.status = cardError
			card.errMsg = msg.err.Error()
		} else {
			card.status = cardIdle
			card.errMsg = ""
		}
		m.refreshViewport(false)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 1
	inputHeight := 3
	statusHeight := 1
	vpHeight := m.height - headerHeight - inputHeight - statusHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	contentWidth := m.width
	if m.showSidebar {
		contentWidth -= sidebarWidth
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 2)
	m.sessionList.SetSize(sidebarWidth-2, vpHeight)
	m.refreshViewport(false)
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.teardown()
		return m, tea.Quit

	case "ctrl+n":
		return m, m.createSessionCmd("")

	case "ctrl+b":
		m.showSidebar = !m.showSidebar
		if !m.showSidebar && m.focus == focusSessions {
			m.focus = focusInput
			m.textarea.Focus()
		}
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case "tab":
		m.cycleFocus()
		return m, nil

	case "esc":
		if m.fullscreen != "" {
			m.fullscreen = ""
			m.showConfig = false
			m.refreshViewport(false)
			return m, nil
		}
		m.focus = focusInput
		m.textarea.Focus()
		return m, nil
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusThread:
		return m.handleThreadKey(msg)
	case focusSessions:
		return m.handleSessionsKey(msg)
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.textarea.Value())
		if text == "" || m.sending {
			return m, nil
		}
		m.textarea.Reset()
		m.sending = true
		m.setStatus("thinking...")
		return m, m.sendMessageCmd(text, m.gen)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) handleThreadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.viewport.LineUp(1)
		return m, nil
	case "down", "j":
		m.viewport.LineDown(1)
		return m, nil
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	case "left", "h":
		m.moveSelection(-1)
		return m, nil
	case "right", "l":
		m.moveSelection(1)
		return m, nil
	case "r":
		return m, m.dispatchAction(actionRefresh, false)
	case "R":
		return m, m.dispatchAction(actionRefresh, true)
	case "c":
		return m, m.dispatchAction(actionConfigure, false)
	case "f", "enter":
		return m, m.dispatchAction(actionFullscreen, false)
	}
	return m, nil
}

func (m *Model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
			session := item.session
			m.gen++
			return m, m.selectSessionCmd(&session)
		}
		return m, nil
	case "x", "delete":
		if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
			return m, m.deleteSessionCmd(item.session.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

// dispatchAction routes a widget action for the selected card. Unknown
// actions are logged and ignored.
func (m *Model) dispatchAction(action string, force bool) tea.Cmd {
	card := m.selectedCard()
	if card == nil {
		return nil
	}

	switch action {
	case actionRefresh:
		card.status = cardLoading
		card.errMsg = ""
		m.refreshViewport(false)
		return m.refreshWidgetCmd(card.widget.ID, force, m.gen)

	case actionConfigure:
		m.fullscreen = card.widget.ID
		m.showConfig = true
		m.refreshViewport(false)
		return nil

	case actionFullscreen:
		m.fullscreen = card.widget.ID
		m.showConfig = false
		m.refreshViewport(false)
		return nil

	default:
		m.logger.Debug("unknown widget action", zap.String("action", action))
		return nil
	}
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusInput:
		m.textarea.Blur()
		m.focus = focusThread
	case focusThread:
		if m.showSidebar {
			m.focus = focusSessions
		} else {
			m.focus = focusInput
			m.textarea.Focus()
		}
	case focusSessions:
		m.focus = focusInput
		m.textarea.Focus()
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.cardOrder) == 0 {
		m.selected = -1
		return
	}
	if m.selected < 0 {
		m.selected = 0
	} else {
		m.selected += delta
		if m.selected < 0 {
			m.selected = 0
		}
		if m.selected >= len(m.cardOrder) {
			m.selected = len(m.cardOrder) - 1
		}
	}
	m.refreshViewport(false)
}

func (m *Model) selectedCard() *cardState {
	if m.selected < 0 || m.selected >= len(m.cardOrder) {
		return nil
	}
	return m.cards[m.cardOrder[m.selected]]
}

// rebuildCards re-derives the card index from the message list, preserving
// render state for widgets that survived the update.
func (m *Model) rebuildCards() {
	old := m.cards
	m.cards = map[string]*cardState{}
	m.cardOrder = m.cardOrder[:0]

	for _, message := range m.messages {
		for _, w := range message.Widgets {
			card := &cardState{widget: w}
			if prev, ok := old[w.ID]; ok {
				card.status = prev.status
				card.errMsg = prev.errMsg
			}
			m.cards[w.ID] = card
			m.cardOrder = append(m.cardOrder, w.ID)
		}
	}

	if m.selected >= len(m.cardOrder) {
		m.selected = len(m.cardOrder) - 1
	}
	if m.fullscreen != "" {
		if _, ok := m.cards[m.fullscreen]; !ok {
			m.fullscreen = ""
			m.showConfig = false
		}
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusIsErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusIsErr = true
	m.logger.Warn("ui error", zap.String("error", text))
}
