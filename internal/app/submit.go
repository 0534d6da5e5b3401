package app

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/notification"
	"github.com/zhubert/threadchat/internal/ui"
)

// submit sends the composer text. The user turn is rendered and the input
// disabled before the request goes out; SubmitResultMsg settles it.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.chat.GetInput())
	if text == "" {
		return nil
	}
	if !m.IsIdle() {
		return nil
	}

	threadID, minted := m.state.EnsureActive(context.Background())
	log := logger.WithThread(threadID)
	if minted {
		log.Info("minted thread for first message")
	}

	if err := m.guard.Acquire(threadID, "submit"); err != nil {
		log.Warn("submit rejected", "error", err)
		return m.ShowFlashWarning(BusyMessage)
	}

	m.chat.AppendUserMessage(text)
	m.chat.ClearInput()
	m.chat.SetInputEnabled(false)
	m.setState(StateSending)
	m.sendingThread = threadID
	m.pendingText = text
	m.sidebar.SetSending(threadID, true)
	m.header.SetSending(true)
	m.syncActive()

	log.Debug("submitting message", "length", len(text))
	svc := m.svc
	ctx, cancel := m.requestContext()
	request := func() tea.Msg {
		defer cancel()
		reply, err := svc.Submit(ctx, text, threadID)
		return SubmitResultMsg{ThreadID: threadID, Reply: reply, Err: err}
	}

	return tea.Batch(request, m.chat.SetWaiting(true), ui.SidebarTick())
}

// handleSubmitResult renders the assistant turn, or the apology when the
// request failed, then returns the composer to idle.
func (m *Model) handleSubmitResult(msg SubmitResultMsg) tea.Cmd {
	log := logger.WithThread(msg.ThreadID)
	m.setState(StateSettled)

	m.guard.Release(msg.ThreadID)
	m.sidebar.SetSending(msg.ThreadID, false)
	m.header.SetSending(false)
	m.sendingThread = ""
	m.pendingText = ""

	wasActive := m.state.IsActive(msg.ThreadID)
	var cmds []tea.Cmd

	var text string
	if msg.Err != nil || msg.Reply == nil {
		log.Error("submit failed", "error", msg.Err)
		text = ui.ApologyMessage
	} else {
		text = msg.Reply.Display()
		if !msg.Reply.OK() {
			log.Warn("chat service returned an error", "error", msg.Reply.Error)
		}

		threadID := msg.ThreadID
		if assigned := msg.Reply.ThreadID; assigned != "" && assigned != threadID {
			log.Info("server assigned thread id", "assigned", assigned)
			if wasActive {
				m.state.SetActive(context.Background(), assigned)
			}
			threadID = assigned
		}
		if !m.sidebar.Promote(threadID, msg.Reply.Title) {
			cmds = append(cmds, m.refreshConversations())
		}
	}

	if wasActive {
		m.chat.SetWaiting(false)
		m.chat.AppendAssistantMessage(text)
		cmds = append(cmds, m.chat.StartCompletionFlash())
	} else {
		log.Debug("reply arrived for inactive thread", "active", m.state.Active())
	}

	if msg.Err == nil && msg.Reply != nil && msg.Reply.OK() {
		cmds = append(cmds, m.notifyReply(msg.Reply.Content))
	}

	m.syncActive()
	m.chat.SetInputEnabled(true)
	m.setState(StateIdle)
	return tea.Batch(cmds...)
}

// notifyReply raises a desktop notification when the terminal is not
// focused and notifications are enabled.
func (m *Model) notifyReply(reply string) tea.Cmd {
	if m.terminalFocused || !m.config.GetNotificationsEnabled() {
		return nil
	}
	title := m.activeTitle()
	if title == "" {
		title = ui.NewChatTitle
	}
	return func() tea.Msg {
		_ = notification.ReplyArrived(title, reply)
		return nil
	}
}
