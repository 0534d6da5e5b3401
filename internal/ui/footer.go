package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DefaultFlashDuration is how long a flash message stays in the footer.
const DefaultFlashDuration = 4 * time.Second

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient status line shown in place of the key bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg prompts the app to drop expired flash messages.
type FlashTickMsg time.Time

// FlashTick schedules the next expiry check.
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	bindings       []KeyBinding
	sidebarFocused bool
	sending        bool
	renaming       bool
	searching      bool
	flashMessage   *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "r", Desc: "rename"},
			{Key: "d", Desc: "delete"},
			{Key: "o", Desc: "options"},
			{Key: "/", Desc: "filter"},
			{Key: "ctrl+t", Desc: "theme"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(sidebarFocused, sending, renaming, searching bool) {
	f.sidebarFocused = sidebarFocused
	f.sending = sending
	f.renaming = renaming
	f.searching = searching
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for the given duration.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// FlashText returns the current flash text, or "".
func (f *Footer) FlashText() string {
	if f.flashMessage == nil {
		return ""
	}
	return f.flashMessage.Text
}

// ClearIfExpired drops an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) renderFlash() string {
	var icon string
	var c = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, c = "✕", ColorError
	case FlashWarning:
		icon, c = "⚠", ColorWarning
	case FlashSuccess:
		icon, c = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	style := lipgloss.NewStyle().Foreground(c)
	return style.Bold(true).Render(icon) + " " + style.Render(f.flashMessage.Text)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var bindings []KeyBinding
	switch {
	case f.renaming:
		bindings = []KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc/tab", Desc: "done"},
		}
	case f.searching:
		bindings = []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "esc", Desc: "clear filter"},
		}
	case !f.sidebarFocused && f.sending:
		bindings = []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+y", Desc: "copy reply"},
		}
	case !f.sidebarFocused:
		bindings = []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+s", Desc: "speak"},
			{Key: "ctrl+r", Desc: "dictate"},
			{Key: "ctrl+y", Desc: "copy reply"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	default:
		bindings = f.bindings
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
