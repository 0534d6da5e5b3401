package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/threadchat/internal/keys"
	"github.com/zhubert/threadchat/internal/localstore"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key                  string                 // The key binding (e.g., "r", "ctrl+t")
	DisplayKey           string                 // Display name in help; defaults to Key
	Description          string                 // Human-readable description
	Category             string                 // Section for help modal grouping
	RequiresConversation bool                   // A sidebar item must be selected
	RequiresSidebar      bool                   // Sidebar must be focused
	Handler              func(m *Model) tea.Cmd // Action to perform
	Condition            func(m *Model) bool    // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryConversations = "Conversations"
	CategoryChat          = "Chat"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryConversations,
	CategoryChat,
	CategoryGeneral,
}

// ShortcutRegistry lists every executable shortcut. Entries here appear in
// the help modal automatically.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Switch between sidebar and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:             "/",
		Description:     "Filter conversations by title",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutSearch,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},

	// Conversations
	{
		Key:         keys.CtrlN,
		Description: "New chat",
		Category:    CategoryConversations,
		Handler:     shortcutNewChat,
	},
	{
		Key:                  "r",
		Description:          "Rename conversation",
		Category:             CategoryConversations,
		RequiresSidebar:      true,
		RequiresConversation: true,
		Handler:              shortcutRename,
	},
	{
		Key:                  "d",
		Description:          "Delete conversation",
		Category:             CategoryConversations,
		RequiresSidebar:      true,
		RequiresConversation: true,
		Handler:              shortcutDelete,
	},
	{
		Key:                  "o",
		Description:          "Conversation options",
		Category:             CategoryConversations,
		RequiresSidebar:      true,
		RequiresConversation: true,
		Handler:              shortcutOptions,
	},
	{
		Key:         keys.CtrlL,
		Description: "Reload conversations",
		Category:    CategoryConversations,
		Handler:     shortcutReload,
	},

	// Chat
	{
		Key:         keys.CtrlS,
		Description: "Speak last reply",
		Category:    CategoryChat,
		Handler:     shortcutSpeak,
	},
	{
		Key:         keys.CtrlR,
		Description: "Dictate into the input",
		Category:    CategoryChat,
		Handler:     shortcutDictate,
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy last reply",
		Category:    CategoryChat,
		Handler:     shortcutCopyReply,
	},

	// General
	{
		Key:         keys.CtrlT,
		Description: "Toggle light/dark theme",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleTheme,
	},
	{
		Key:         keys.CtrlB,
		Description: "Collapse or expand the sidebar",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleSidebar,
	},
	{
		Key:             "q",
		Description:     "Quit",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
}

// helpShortcut is the help modal shortcut.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:             "?",
	Description:     "Show this help",
	Category:        CategoryGeneral,
	RequiresSidebar: true,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Move through conversations", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Open conversation / Send message", Category: CategoryNavigation},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll chat history", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Clear filter / Back to sidebar", Category: CategoryNavigation},

	{DisplayKey: "Shift+Enter", Description: "Insert newline", Category: CategoryChat},
	{DisplayKey: "Mouse drag", Description: "Select text (auto-copies)", Category: CategoryChat},
	{DisplayKey: "Double click", Description: "Select word", Category: CategoryChat},
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.focus != FocusSidebar {
		return false
	}
	if s.RequiresConversation && m.sidebar.SelectedConversation() == nil {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (cmd, true) if the shortcut was found and its guards passed.
func (m *Model) ExecuteShortcut(key string) (tea.Cmd, bool) {
	log := logger.WithComponent("shortcuts")

	if key == helpShortcut.Key {
		if !m.isShortcutApplicable(helpShortcut) {
			return nil, false
		}
		return shortcutHelp(m), true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			log.Debug("guard failed", "key", key, "focus", m.focus)
			return nil, false
		}
		log.Debug("executing", "key", key)
		return s.Handler(m), true
	}
	return nil, false
}

// getApplicableHelpSections groups the shortcuts usable right now by category.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []ui.HelpSection {
	categories := make(map[string][]ui.KeyBinding)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], ui.KeyBinding{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	for _, s := range displayOnly {
		add(s)
	}

	var sections []ui.HelpSection
	for _, cat := range categoryOrder {
		if bindings, ok := categories[cat]; ok && len(bindings) > 0 {
			sections = append(sections, ui.HelpSection{
				Title:    cat,
				Bindings: bindings,
			})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) tea.Cmd {
	m.toggleFocus()
	return nil
}

func shortcutSearch(m *Model) tea.Cmd {
	return m.sidebar.EnterSearchMode()
}

func shortcutNewChat(m *Model) tea.Cmd {
	return m.newChat()
}

func shortcutRename(m *Model) tea.Cmd {
	return m.startRename()
}

func shortcutDelete(m *Model) tea.Cmd {
	return m.confirmDelete()
}

func shortcutOptions(m *Model) tea.Cmd {
	conv := m.sidebar.SelectedConversation()
	m.modal.Show(ui.NewOptionsState(conv.ThreadID, conv.DisplayTitle()))
	return nil
}

func shortcutReload(m *Model) tea.Cmd {
	return tea.Batch(m.reload(), m.ShowFlashInfo("Reloading..."))
}

func shortcutSpeak(m *Model) tea.Cmd {
	return m.speakLastReply()
}

func shortcutDictate(m *Model) tea.Cmd {
	return m.startDictation()
}

func shortcutCopyReply(m *Model) tea.Cmd {
	return m.copyLastReply()
}

func shortcutToggleTheme(m *Model) tea.Cmd {
	name := ui.ToggleTheme()
	if err := m.store.Set(context.Background(), localstore.KeyTheme, string(name)); err != nil {
		logger.WithComponent("app").Warn("failed to persist theme", "error", err)
	}
	m.chat.Refresh()
	return nil
}

func shortcutToggleSidebar(m *Model) tea.Cmd {
	vc := ui.GetViewContext()
	collapsed := !vc.SidebarCollapsed
	vc.SetSidebarCollapsed(collapsed)
	if err := localstore.SetBool(context.Background(), m.store, localstore.KeySidebarCollapsed, collapsed); err != nil {
		logger.WithComponent("app").Warn("failed to persist sidebar state", "error", err)
	}
	if collapsed && m.focus == FocusSidebar {
		m.focusChat()
	}
	if m.width > 0 {
		m.updateSizes()
	}
	return nil
}

func shortcutHelp(m *Model) tea.Cmd {
	allShortcuts := append(append([]Shortcut{}, ShortcutRegistry...), helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(ui.NewHelpStateFromSections(sections))
	return nil
}

func shortcutQuit(m *Model) tea.Cmd {
	m.player.Stop()
	return tea.Quit
}
