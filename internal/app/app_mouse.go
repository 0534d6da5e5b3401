package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/threadchat/internal/ui"
)

// routeMouseEvents sends mouse events over the chat panel to the chat,
// translated into chat-panel coordinates. Events over the sidebar are ignored.
func (m *Model) routeMouseEvents(msg tea.Msg) tea.Cmd {
	sidebarWidth := m.sidebar.Width()
	if ui.GetViewContext().SidebarCollapsed {
		sidebarWidth = 0
	}

	var adjusted tea.Msg
	switch mouseMsg := msg.(type) {
	case tea.MouseWheelMsg:
		if mouseMsg.X < sidebarWidth {
			return nil
		}
		adjusted = mouseMsg
	case tea.MouseClickMsg:
		if mouseMsg.X < sidebarWidth {
			return nil
		}
		adjusted = m.adjustMouseClickMsg(mouseMsg, sidebarWidth)
	case tea.MouseMotionMsg:
		if mouseMsg.X < sidebarWidth {
			return nil
		}
		adjusted = m.adjustMouseMotionMsg(mouseMsg, sidebarWidth)
	case tea.MouseReleaseMsg:
		if mouseMsg.X < sidebarWidth {
			return nil
		}
		adjusted = m.adjustMouseReleaseMsg(mouseMsg, sidebarWidth)
	default:
		return nil
	}

	chat, cmd := m.chat.Update(adjusted)
	m.chat = chat
	return cmd
}

// adjustMouseClickMsg adjusts mouse click coordinates for the chat panel.
// X is adjusted by subtracting sidebar width, Y by subtracting header height.
func (m *Model) adjustMouseClickMsg(msg tea.MouseClickMsg, sidebarWidth int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      msg.X - sidebarWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseMotionMsg adjusts mouse motion coordinates for the chat panel.
func (m *Model) adjustMouseMotionMsg(msg tea.MouseMotionMsg, sidebarWidth int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      msg.X - sidebarWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseReleaseMsg adjusts mouse release coordinates for the chat panel.
func (m *Model) adjustMouseReleaseMsg(msg tea.MouseReleaseMsg, sidebarWidth int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      msg.X - sidebarWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}
