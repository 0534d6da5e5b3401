package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/threadchat/internal/api"
	"github.com/zhubert/threadchat/internal/config"
	"github.com/zhubert/threadchat/internal/localstore"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/process"
	"github.com/zhubert/threadchat/internal/session"
	"github.com/zhubert/threadchat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// AppState is the composer's submission phase. A submit moves
// idle -> sending -> settled -> idle; nothing else changes it.
type AppState int

const (
	StateIdle    AppState = iota // Ready for user input
	StateSending                 // Waiting for the chat reply
	StateSettled                 // Reply handled, restoring the input
)

// String returns a human-readable name for the state
func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSending:
		return "Sending"
	case StateSettled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// BusyMessage is flashed when an operation targets a thread that already has
// one in flight.
const BusyMessage = "Another operation is in progress for this conversation"

// DeleteFailedMessage is the body of the alert shown when a delete fails.
const DeleteFailedMessage = "Could not delete the conversation."

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string

	svc    api.Service
	state  *session.State
	guard  *session.Guard
	store  localstore.Store
	player *process.Player

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Submission state machine
	appState      AppState
	sendingThread string
	pendingText   string // user turn awaiting its reply

	terminalFocused bool
	dictating       bool
}

// New creates the app model. Theme and sidebar layout are restored from
// store; the active thread comes from state.
func New(cfg *config.Config, svc api.Service, state *session.State, store localstore.Store, version string) *Model {
	ctx := context.Background()

	if name, ok, err := store.Get(ctx, localstore.KeyTheme); err != nil {
		logger.WithComponent("app").Warn("failed to read theme", "error", err)
	} else if ok {
		ui.SetThemeByName(name)
	}
	ui.GetViewContext().SetSidebarCollapsed(localstore.GetBool(ctx, store, localstore.KeySidebarCollapsed, false))

	m := &Model{
		config:          cfg,
		version:         version,
		svc:             svc,
		state:           state,
		guard:           session.NewGuard(),
		store:           store,
		player:          process.NewPlayer(cfg.GetAudioPlayer()),
		header:          ui.NewHeader(),
		footer:          ui.NewFooter(),
		sidebar:         ui.NewSidebar(),
		chat:            ui.NewChat(),
		modal:           ui.NewModal(),
		focus:           FocusSidebar,
		appState:        StateIdle,
		terminalFocused: true,
	}

	m.sidebar.SetActive(state.Active())
	m.chat.ShowWelcome()
	if ui.GetViewContext().SidebarCollapsed {
		m.focus = FocusChat
		m.chat.SetFocused(true)
	} else {
		m.sidebar.SetFocused(true)
	}

	return m
}

// Init loads the conversation list and, if a thread was active when the
// app last ran, its messages.
func (m *Model) Init() tea.Cmd {
	logger.WithComponent("app").Info("starting", "version", m.version, "api", m.config.GetAPIBaseURL())

	cmds := []tea.Cmd{m.refreshConversations()}
	if active := m.state.Active(); active != "" {
		cmds = append(cmds, m.loadMessages(active))
	}
	return tea.Batch(cmds...)
}

// State returns the composer's current phase.
func (m *Model) State() AppState {
	return m.appState
}

// IsIdle returns true if the composer accepts a new message
func (m *Model) IsIdle() bool {
	return m.appState == StateIdle
}

// setState transitions to a new state with logging
func (m *Model) setState(newState AppState) {
	if m.appState != newState {
		logger.WithComponent("app").Debug("state transition", "from", m.appState, "to", newState)
		m.appState = newState
	}
}

// requestContext bounds a remote call by the configured timeout.
func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	timeout := m.config.GetRequestTimeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// activeTitle returns the header title for the active thread: its listed
// title, or "" when the thread is not in the sidebar yet.
func (m *Model) activeTitle() string {
	if conv, ok := m.sidebar.Get(m.state.Active()); ok {
		return conv.DisplayTitle()
	}
	return ""
}

// syncActive marks the sidebar item for the active thread and updates the
// header to match.
func (m *Model) syncActive() {
	m.sidebar.SetActive(m.state.Active())
	m.header.SetConversation(m.activeTitle())
}

func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}

// toggleFocus switches between the sidebar and chat. A collapsed sidebar
// cannot take focus.
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.focusChat()
		return
	}
	if ui.GetViewContext().SidebarCollapsed {
		return
	}
	m.focusSidebar()
}

func (m *Model) focusChat() {
	m.focus = FocusChat
	m.sidebar.SetFocused(false)
	m.chat.SetFocused(true)
}

func (m *Model) focusSidebar() {
	m.focus = FocusSidebar
	m.sidebar.SetFocused(true)
	m.chat.SetFocused(false)
}
