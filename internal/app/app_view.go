package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/threadchat/internal/ui"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current screen as a string.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.updateFooterContext()

	header := m.header.View()
	footer := m.footer.View()

	panels := m.chat.View()
	if !ui.GetViewContext().SidebarCollapsed {
		panels = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.sidebar.View(),
			panels,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)
}

func (m *Model) updateFooterContext() {
	m.footer.SetContext(
		m.focus == FocusSidebar,
		m.appState == StateSending,
		m.sidebar.IsRenaming(),
		m.sidebar.IsSearchMode(),
	)
}
