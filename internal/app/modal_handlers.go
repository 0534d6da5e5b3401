package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/threadchat/internal/keys"
	"github.com/zhubert/threadchat/internal/ui"
)

// handleModalKey routes modal key events to the handler for the modal's state.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *ui.OptionsState:
		return m.handleOptionsModal(key, msg, s)
	case *ui.AlertState, *ui.HelpState:
		if key == keys.Enter || key == keys.Escape || key == "q" || key == "?" {
			m.modal.Hide()
		}
		return nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

// handleConfirmDeleteModal deletes on Enter with Delete chosen. Esc, like a
// click outside, cancels.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, s *ui.ConfirmDeleteState) tea.Cmd {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return nil
	case keys.Enter:
		m.modal.Hide()
		if !s.Confirmed() {
			return nil
		}
		return m.deleteConversation(s.ThreadID)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	// huh completes the form on its y/n accelerators.
	if s.Completed() {
		m.modal.Hide()
		if s.Confirmed() {
			return tea.Batch(cmd, m.deleteConversation(s.ThreadID))
		}
	}
	return cmd
}

func (m *Model) handleOptionsModal(key string, msg tea.KeyPressMsg, s *ui.OptionsState) tea.Cmd {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return nil
	case keys.Enter:
		m.modal.Hide()
		m.sidebar.SelectConversation(s.ThreadID)
		switch s.Choice() {
		case ui.OptionRename:
			return m.startRename()
		case ui.OptionDelete:
			m.modal.Show(ui.NewConfirmDeleteState(s.ThreadID, s.ConversationTitle))
		}
		return nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}
