package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	pkgerrors "github.com/zhubert/threadchat/internal/errors"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/ui"
)

// =============================================================================
// List synchronization
// =============================================================================

// refreshConversations fetches the history list off the update loop.
func (m *Model) refreshConversations() tea.Cmd {
	svc := m.svc
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		convs, err := svc.ListConversations(ctx)
		return ConversationsLoadedMsg{Conversations: convs, Err: err}
	}
}

// handleConversationsLoaded rebuilds the sidebar. A failed fetch keeps the
// previous list and is only logged.
func (m *Model) handleConversationsLoaded(msg ConversationsLoadedMsg) tea.Cmd {
	log := logger.WithComponent("sync")
	if msg.Err != nil {
		log.Warn("failed to refresh conversations", "error", msg.Err, "kind", pkgerrors.GetKind(msg.Err))
		return nil
	}
	log.Debug("conversations refreshed", "count", len(msg.Conversations))

	m.sidebar.SetConversations(msg.Conversations)
	m.syncActive()
	return nil
}

// =============================================================================
// Switching
// =============================================================================

// switchTo makes threadID the active thread and shows its history. An empty
// id shows the welcome message.
func (m *Model) switchTo(threadID string) tea.Cmd {
	logger.WithThread(threadID).Debug("switching conversation")

	m.state.SetActive(context.Background(), threadID)
	m.chat.Clear()
	m.syncActive()

	// The waiting indicator belongs to the thread that is sending.
	m.chat.SetWaiting(false)

	if threadID == "" {
		m.chat.ShowWelcome()
		return nil
	}
	return m.loadMessages(threadID)
}

// loadMessages fetches a thread's messages off the update loop.
func (m *Model) loadMessages(threadID string) tea.Cmd {
	svc := m.svc
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		msgs, err := svc.GetMessages(ctx, threadID)
		return MessagesLoadedMsg{ThreadID: threadID, Messages: msgs, Err: err}
	}
}

// handleMessagesLoaded renders a thread's history if it is still active.
func (m *Model) handleMessagesLoaded(msg MessagesLoadedMsg) tea.Cmd {
	log := logger.WithThread(msg.ThreadID)
	if !m.state.IsActive(msg.ThreadID) {
		log.Debug("discarding messages for inactive thread", "active", m.state.Active())
		return nil
	}

	if msg.Err != nil {
		log.Warn("failed to load messages", "error", msg.Err)
		m.chat.ShowLoadError()
	} else {
		m.chat.SetMessages(msg.Messages)
	}
	m.syncActive()

	// The history replaced the transcript; restore the turn still in flight.
	if m.appState == StateSending && m.sendingThread == msg.ThreadID {
		m.chat.AppendUserMessage(m.pendingText)
		return m.chat.SetWaiting(true)
	}
	return nil
}

// reload refreshes the list and re-fetches the active thread.
func (m *Model) reload() tea.Cmd {
	cmds := []tea.Cmd{m.refreshConversations()}
	if active := m.state.Active(); active != "" {
		cmds = append(cmds, m.loadMessages(active))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// New chat
// =============================================================================

// newChat starts a fresh thread: a new id, the welcome message and a list
// refresh so that nothing listed is active.
func (m *Model) newChat() tea.Cmd {
	id := m.state.NewThread(context.Background())
	logger.WithThread(id).Info("started new chat")

	m.chat.Clear()
	m.chat.SetWaiting(false)
	m.chat.ShowWelcome()
	m.syncActive()
	m.focusChat()
	return m.refreshConversations()
}

// =============================================================================
// Rename
// =============================================================================

// startRename opens the inline editor on the selected conversation.
func (m *Model) startRename() tea.Cmd {
	if m.sidebar.SelectedConversation() == nil {
		return nil
	}
	if m.focus != FocusSidebar {
		m.focusSidebar()
	}
	return m.sidebar.StartRename()
}

// handleRenameCommit issues the rename when the title changed. Every commit
// ends in a list refresh, which also reverts a failed rename.
func (m *Model) handleRenameCommit(msg ui.RenameCommitMsg) tea.Cmd {
	log := logger.WithThread(msg.ThreadID)
	if !msg.Changed() {
		log.Debug("rename skipped", "value", msg.Value)
		return m.refreshConversations()
	}

	if err := m.guard.Acquire(msg.ThreadID, "rename"); err != nil {
		log.Warn("rename rejected", "error", err)
		return tea.Batch(m.ShowFlashWarning(BusyMessage), m.refreshConversations())
	}

	log.Info("renaming conversation", "title", msg.Value)
	svc := m.svc
	ctx, cancel := m.requestContext()
	threadID, title := msg.ThreadID, msg.Value
	return func() tea.Msg {
		defer cancel()
		err := svc.RenameConversation(ctx, threadID, title)
		return RenameResultMsg{ThreadID: threadID, Err: err}
	}
}

func (m *Model) handleRenameResult(msg RenameResultMsg) tea.Cmd {
	m.guard.Release(msg.ThreadID)
	if msg.Err != nil {
		logger.WithThread(msg.ThreadID).Warn("rename failed", "error", msg.Err)
	}
	return m.refreshConversations()
}

// =============================================================================
// Delete
// =============================================================================

// confirmDelete opens the confirmation modal for the selected conversation.
func (m *Model) confirmDelete() tea.Cmd {
	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return nil
	}
	m.modal.Show(ui.NewConfirmDeleteState(conv.ThreadID, conv.DisplayTitle()))
	return nil
}

// deleteConversation issues the delete for a confirmed thread.
func (m *Model) deleteConversation(threadID string) tea.Cmd {
	log := logger.WithThread(threadID)
	if err := m.guard.Acquire(threadID, "delete"); err != nil {
		log.Warn("delete rejected", "error", err)
		return m.ShowFlashWarning(BusyMessage)
	}

	log.Info("deleting conversation")
	svc := m.svc
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		err := svc.DeleteConversation(ctx, threadID)
		return DeleteResultMsg{ThreadID: threadID, Err: err}
	}
}

// handleDeleteResult removes the deleted item, or keeps it and raises an
// alert. Deleting the active thread starts a new chat.
func (m *Model) handleDeleteResult(msg DeleteResultMsg) tea.Cmd {
	m.guard.Release(msg.ThreadID)
	log := logger.WithThread(msg.ThreadID)

	if msg.Err != nil {
		log.Error("delete failed", "error", msg.Err)
		m.modal.Show(ui.NewAlertState("Delete failed", DeleteFailedMessage))
		return nil
	}

	m.sidebar.Remove(msg.ThreadID)
	if m.state.IsActive(msg.ThreadID) {
		return m.newChat()
	}
	m.syncActive()
	return nil
}
