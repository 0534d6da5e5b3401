package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const headerTitle = " threadchat"

// NewChatTitle is shown in the header when no listed conversation is active.
const NewChatTitle = "New Chat"

// Header represents the top header bar
type Header struct {
	width        int
	conversation string
	sending      bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{conversation: NewChatTitle}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversation sets the title shown on the right. Empty means a new chat.
func (h *Header) SetConversation(title string) {
	if title == "" {
		title = NewChatTitle
	}
	h.conversation = title
}

// Conversation returns the title currently shown.
func (h *Header) Conversation() string {
	return h.conversation
}

// SetSending marks the active conversation as waiting on a reply.
func (h *Header) SetSending(sending bool) {
	h.sending = sending
}

// View renders the header
func (h *Header) View() string {
	rightText := h.conversation
	if h.sending {
		rightText += " (sending)"
	}
	rightText += " "

	titleWidth := lipgloss.Width(headerTitle)
	if room := h.width - titleWidth - 1; room > 0 && lipgloss.Width(rightText) > room {
		rightText = ansi.Truncate(rightText, room-1, "…") + " "
	}

	paddingLen := h.width - titleWidth - lipgloss.Width(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	return h.renderGradient(headerTitle + strings.Repeat(" ", paddingLen) + rightText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content over a background fading from the
// theme's primary color to its main background.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	titleLen := len([]rune(headerTitle))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < titleLen)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
