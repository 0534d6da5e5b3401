package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/threadchat/internal/api"
	"github.com/zhubert/threadchat/internal/keys"
	"github.com/zhubert/threadchat/internal/logger"
)

// sidebarSpinnerFrames animate conversations waiting on a reply.
var sidebarSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

const activeMarker = "●"

// SidebarTickMsg is sent to advance the spinner animation
type SidebarTickMsg time.Time

// SidebarTick returns a command that advances the sidebar spinner.
func SidebarTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// RenameCommitMsg is emitted when the inline rename editor loses focus.
// Value is the trimmed text the user left in the editor.
type RenameCommitMsg struct {
	ThreadID string
	Original string
	Value    string
}

// Changed reports whether the rename should reach the server.
func (m RenameCommitMsg) Changed() bool {
	return m.Value != "" && m.Value != m.Original
}

// Sidebar lists conversations. At most one item is active, and it is the
// item whose id matches the session's active thread.
type Sidebar struct {
	conversations []api.Conversation
	filtered      []api.Conversation
	selectedIdx   int
	scrollOffset  int
	width         int
	height        int
	focused       bool

	activeID string
	sending  map[string]bool

	spinnerFrame int

	renaming       bool
	renameID       string
	renameOriginal string
	renameInput    textinput.Model

	searchMode  bool
	searchInput textinput.Model
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	search := textinput.New()
	search.Placeholder = "filter..."
	search.CharLimit = SidebarSearchCharLimit

	rename := textinput.New()
	rename.CharLimit = ModalInputCharLimit
	rename.Prompt = ""

	return &Sidebar{
		sending:     make(map[string]bool),
		searchInput: search,
		renameInput: rename,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	inner := GetViewContext().InnerWidth(width) - 4
	if inner < 1 {
		inner = 1
	}
	s.renameInput.SetWidth(inner)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetConversations replaces the list wholesale. The cursor stays on the same
// conversation when it is still listed.
func (s *Sidebar) SetConversations(convs []api.Conversation) {
	var selectedID string
	if sel := s.SelectedConversation(); sel != nil {
		selectedID = sel.ThreadID
	}

	s.conversations = make([]api.Conversation, len(convs))
	copy(s.conversations, convs)

	if s.searchMode || s.filtered != nil {
		s.applyFilter(s.searchInput.Value())
	}

	s.selectedIdx = 0
	if selectedID != "" {
		s.SelectConversation(selectedID)
	}
	s.clampSelection()

	logger.WithComponent("sidebar").Debug("Conversations rebuilt", "count", len(convs))
}

// Conversations returns a copy of the listed conversations in display order.
func (s *Sidebar) Conversations() []api.Conversation {
	out := make([]api.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Len returns the number of listed conversations.
func (s *Sidebar) Len() int {
	return len(s.conversations)
}

// Contains reports whether id is listed.
func (s *Sidebar) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// Get returns the listed conversation with the given id.
func (s *Sidebar) Get(id string) (api.Conversation, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.conversations[i], true
	}
	return api.Conversation{}, false
}

func (s *Sidebar) indexOf(id string) int {
	for i, c := range s.conversations {
		if c.ThreadID == id {
			return i
		}
	}
	return -1
}

// SetActive marks id as the active conversation. An id that is not listed
// leaves no item active.
func (s *Sidebar) SetActive(id string) {
	s.activeID = id
}

// ActiveID returns the id of the active item, or "" when none is listed.
func (s *Sidebar) ActiveID() string {
	if s.activeID != "" && s.Contains(s.activeID) {
		return s.activeID
	}
	return ""
}

// IsActive reports whether the listed item id is the active one.
func (s *Sidebar) IsActive(id string) bool {
	return id != "" && s.ActiveID() == id
}

// Promote moves id to the top of the list. A non-empty title replaces the
// listed one. Returns false when id is not listed.
func (s *Sidebar) Promote(id, title string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	conv := s.conversations[i]
	if title != "" {
		conv.Title = title
	}
	copy(s.conversations[1:i+1], s.conversations[:i])
	s.conversations[0] = conv
	if s.filtered != nil {
		s.applyFilter(s.searchInput.Value())
	}
	return true
}

// Remove drops id from the list. Returns false when id is not listed.
func (s *Sidebar) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
	delete(s.sending, id)
	if s.filtered != nil {
		s.applyFilter(s.searchInput.Value())
	}
	s.clampSelection()
	return true
}

// SelectedConversation returns the conversation under the cursor.
func (s *Sidebar) SelectedConversation() *api.Conversation {
	display := s.displayConversations()
	if s.selectedIdx < 0 || s.selectedIdx >= len(display) {
		return nil
	}
	conv := display[s.selectedIdx]
	return &conv
}

// SelectConversation moves the cursor to id if it is displayed.
func (s *Sidebar) SelectConversation(id string) {
	for i, c := range s.displayConversations() {
		if c.ThreadID == id {
			s.selectedIdx = i
			return
		}
	}
}

func (s *Sidebar) clampSelection() {
	n := len(s.displayConversations())
	if s.selectedIdx >= n {
		s.selectedIdx = n - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SetSending toggles the spinner for a conversation awaiting a reply.
func (s *Sidebar) SetSending(id string, sending bool) {
	if sending {
		s.sending[id] = true
	} else {
		delete(s.sending, id)
	}
}

// IsSending reports whether any conversation is awaiting a reply.
func (s *Sidebar) IsSending() bool {
	return len(s.sending) > 0
}

// StartRename opens the inline editor on the selected conversation,
// pre-filled with its displayed title.
func (s *Sidebar) StartRename() tea.Cmd {
	sel := s.SelectedConversation()
	if sel == nil {
		return nil
	}
	s.renaming = true
	s.renameID = sel.ThreadID
	s.renameOriginal = sel.DisplayTitle()
	s.renameInput.SetValue(s.renameOriginal)
	s.renameInput.CursorEnd()
	return s.renameInput.Focus()
}

// IsRenaming reports whether the inline editor is open.
func (s *Sidebar) IsRenaming() bool {
	return s.renaming
}

// RenamingID returns the conversation being renamed.
func (s *Sidebar) RenamingID() string {
	if !s.renaming {
		return ""
	}
	return s.renameID
}

// CommitRename closes the editor and returns the commit message.
func (s *Sidebar) CommitRename() RenameCommitMsg {
	msg := RenameCommitMsg{
		ThreadID: s.renameID,
		Original: s.renameOriginal,
		Value:    strings.TrimSpace(s.renameInput.Value()),
	}
	s.renaming = false
	s.renameID = ""
	s.renameOriginal = ""
	s.renameInput.Blur()
	s.renameInput.SetValue("")
	return msg
}

// EnterSearchMode starts filtering the list by title.
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.applyFilter("")
	return s.searchInput.Focus()
}

// ExitSearchMode deactivates search mode and clears the filter
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.filtered = nil
	s.clampSelection()
}

// IsSearchMode returns whether search mode is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

func (s *Sidebar) applyFilter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		s.filtered = nil
		return
	}

	s.filtered = []api.Conversation{}
	for _, c := range s.conversations {
		if strings.Contains(strings.ToLower(c.DisplayTitle()), query) {
			s.filtered = append(s.filtered, c)
		}
	}
	s.clampSelection()
	s.scrollOffset = 0
}

func (s *Sidebar) displayConversations() []api.Conversation {
	if s.filtered != nil {
		return s.filtered
	}
	return s.conversations
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case SidebarTickMsg:
		if !s.IsSending() {
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(sidebarSpinnerFrames)
		return s, SidebarTick()

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}

		if s.renaming {
			switch msg.String() {
			case keys.Enter, keys.Escape, keys.Tab:
				commit := s.CommitRename()
				return s, func() tea.Msg { return commit }
			}
			var cmd tea.Cmd
			s.renameInput, cmd = s.renameInput.Update(msg)
			return s, cmd
		}

		if s.searchMode {
			switch msg.String() {
			case keys.Escape:
				s.ExitSearchMode()
				return s, nil
			case keys.Enter:
				// Keep the filter applied; the app switches to the selection.
				s.searchMode = false
				s.searchInput.Blur()
				return s, nil
			case keys.Up:
				s.moveCursor(-1)
				return s, nil
			case keys.Down:
				s.moveCursor(1)
				return s, nil
			}
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			s.applyFilter(s.searchInput.Value())
			return s, cmd
		}

		switch msg.String() {
		case keys.Up, "k":
			s.moveCursor(-1)
		case keys.Down, "j":
			s.moveCursor(1)
		case keys.Home, "g":
			s.selectedIdx = 0
		case keys.End, "G":
			s.selectedIdx = len(s.displayConversations()) - 1
			s.clampSelection()
		}
	}

	return s, nil
}

func (s *Sidebar) moveCursor(delta int) {
	s.selectedIdx += delta
	s.clampSelection()
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(s.height)
	innerWidth := ctx.InnerWidth(s.width)

	var header []string
	if s.searchMode || s.filtered != nil {
		s.searchInput.SetWidth(innerWidth - 3)
		searchStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		header = append(header, searchStyle.Render("/")+" "+s.searchInput.View())
	}
	visible := innerHeight - len(header)

	display := s.displayConversations()
	var lines []string
	switch {
	case len(display) == 0 && s.filtered != nil:
		lines = append(lines, SidebarEmptyStyle.Render("No matches."))
	case len(display) == 0:
		lines = append(lines, SidebarEmptyStyle.Render("No conversations yet."))
	default:
		if s.selectedIdx < s.scrollOffset {
			s.scrollOffset = s.selectedIdx
		} else if visible > 0 && s.selectedIdx >= s.scrollOffset+visible {
			s.scrollOffset = s.selectedIdx - visible + 1
		}
		if s.scrollOffset < 0 {
			s.scrollOffset = 0
		}

		for i := s.scrollOffset; i < len(display); i++ {
			if visible > 0 && len(lines) >= visible {
				break
			}
			lines = append(lines, s.renderItem(display[i], i == s.selectedIdx, innerWidth))
		}
	}

	content := strings.Join(append(header, lines...), "\n")
	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}

// renderItem renders one conversation row. The marker column shows the
// spinner while a reply is pending and a dot on the active item.
func (s *Sidebar) renderItem(conv api.Conversation, selected bool, innerWidth int) string {
	marker := " "
	switch {
	case s.sending[conv.ThreadID]:
		marker = SidebarActiveMarkerStyle.Render(sidebarSpinnerFrames[s.spinnerFrame])
	case s.IsActive(conv.ThreadID):
		marker = SidebarActiveMarkerStyle.Render(activeMarker)
	}

	titleWidth := innerWidth - 4
	if titleWidth < 1 {
		titleWidth = 1
	}

	var title string
	if s.renaming && conv.ThreadID == s.renameID {
		title = s.renameInput.View()
	} else {
		title = runewidth.Truncate(conv.DisplayTitle(), titleWidth, "…")
	}

	itemStyle := SidebarItemStyle
	if selected && s.focused {
		itemStyle = SidebarSelectedStyle
	}
	return itemStyle.Width(innerWidth).Render(marker + " " + title)
}
