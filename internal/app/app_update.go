package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/threadchat/internal/keys"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.terminalFocused = true
		return m, nil

	case tea.BlurMsg:
		m.terminalFocused = false
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if m.modal.IsVisible() {
			return m, nil
		}
		return m, m.routeMouseEvents(msg)

	// Remote results
	case ConversationsLoadedMsg:
		return m, m.handleConversationsLoaded(msg)
	case MessagesLoadedMsg:
		return m, m.handleMessagesLoaded(msg)
	case SubmitResultMsg:
		return m, m.handleSubmitResult(msg)
	case RenameResultMsg:
		return m, m.handleRenameResult(msg)
	case DeleteResultMsg:
		return m, m.handleDeleteResult(msg)
	case SpeechMsg:
		return m, m.handleSpeech(msg)
	case DictationMsg:
		return m, m.handleDictation(msg)

	case ui.RenameCommitMsg:
		return m, m.handleRenameCommit(msg)

	case ui.ClipboardErrorMsg:
		logger.WithComponent("app").Debug("native clipboard unavailable", "error", msg.Error)
		return m, nil

	// Animations
	case ui.FlashTickMsg:
		return m, m.handleFlashTick()
	case ui.SidebarTickMsg:
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd
	case ui.StopwatchTickMsg, ui.CompletionFlashTickMsg, ui.SelectionFlashTickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	// Anything else (cursor blink and similar) goes to the focused component.
	var cmd tea.Cmd
	if m.focus == FocusChat {
		m.chat, cmd = m.chat.Update(msg)
	} else {
		m.sidebar, cmd = m.sidebar.Update(msg)
	}
	return m, cmd
}

// handleKey routes a key press: modal first, then the sidebar's editing
// modes, then shortcuts, then the focused panel.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if key == keys.CtrlC {
		return shortcutQuit(m)
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Inline rename and the filter own every key while open.
	if m.sidebar.IsRenaming() {
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return cmd
	}
	if m.sidebar.IsSearchMode() {
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		if key == keys.Enter {
			return tea.Batch(cmd, m.openSelected())
		}
		return cmd
	}

	if cmd, ok := m.ExecuteShortcut(key); ok {
		return cmd
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Enter:
		return m.openSelected()
	case keys.PgUp, keys.PgDown:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	return cmd
}

func (m *Model) handleChatKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Enter:
		return m.submit()
	case keys.Escape:
		if m.chat.HasTextSelection() {
			m.chat.SelectionClear()
			return nil
		}
		if !ui.GetViewContext().SidebarCollapsed {
			m.focusSidebar()
		}
		return nil
	}
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return cmd
}

// openSelected switches to the conversation under the sidebar cursor.
func (m *Model) openSelected() tea.Cmd {
	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return nil
	}
	cmd := m.switchTo(conv.ThreadID)
	m.focusChat()
	return cmd
}
