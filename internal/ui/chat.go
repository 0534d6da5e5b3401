package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/threadchat/internal/api"
	"github.com/zhubert/threadchat/internal/keys"
)

// WelcomeMessage opens every new or empty conversation.
const WelcomeMessage = "Hello, I'm BK Assistant. I can help you with admissions information..."

// LoadErrorMessage replaces the history when a conversation fails to load.
const LoadErrorMessage = "Could not load this conversation. Press ctrl+l to retry."

// ApologyMessage is rendered as the assistant turn when a submission fails.
const ApologyMessage = "Sorry, something went wrong. Please try again."

// chatContent describes what the history pane shows besides messages.
type chatContent int

const (
	contentEmpty chatContent = iota
	contentWelcome
	contentLoadError
)

// Chat represents the right panel with conversation view
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	content  chatContent
	messages []api.Message

	inputEnabled bool

	// Waiting state
	waiting    bool
	waitStart  time.Time
	spinner    SpinnerState
	completion int // completion flash frame, -1 when idle

	selection TextSelection
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type a message... (Enter to send, Shift+Enter for newline)"
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.SetHeight(TextareaHeight)
	ti.CharLimit = 0
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, keys.AltEnter, "ctrl+j")
	ti.Focus()

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:     vp,
		input:        ti,
		inputEnabled: true,
		completion:   -1,
		selection:    newTextSelection(),
	}
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	viewportHeight := ctx.InnerHeight(height - InputTotalHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)

	inputWidth := width - BorderSize - InputPaddingWidth
	if inputWidth < 1 {
		inputWidth = 1
	}
	c.input.SetWidth(inputWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused && c.inputEnabled {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// Clear empties the history pane.
func (c *Chat) Clear() {
	c.messages = nil
	c.content = contentEmpty
	c.SelectionClear()
	c.updateContent()
}

// ShowWelcome clears the pane and shows only the welcome message.
func (c *Chat) ShowWelcome() {
	c.messages = nil
	c.content = contentWelcome
	c.SelectionClear()
	c.updateContent()
	c.viewport.GotoTop()
}

// ShowLoadError clears the pane and shows the load failure notice.
func (c *Chat) ShowLoadError() {
	c.messages = nil
	c.content = contentLoadError
	c.SelectionClear()
	c.updateContent()
}

// SetMessages replaces the history and scrolls to the bottom once.
// An empty history shows the welcome message instead.
func (c *Chat) SetMessages(msgs []api.Message) {
	if len(msgs) == 0 {
		c.ShowWelcome()
		return
	}
	c.messages = make([]api.Message, len(msgs))
	copy(c.messages, msgs)
	c.content = contentEmpty
	c.SelectionClear()
	c.updateContent()
	c.viewport.GotoBottom()
}

// AppendUserMessage renders a user turn.
func (c *Chat) AppendUserMessage(text string) {
	c.appendMessage(api.Message{Content: text, Sender: api.SenderUser})
}

// AppendAssistantMessage renders an assistant turn.
func (c *Chat) AppendAssistantMessage(text string) {
	c.appendMessage(api.Message{Content: text, Sender: api.SenderAssistant})
}

func (c *Chat) appendMessage(msg api.Message) {
	if c.content == contentLoadError {
		c.content = contentEmpty
	}
	c.messages = append(c.messages, msg)
	c.updateContent()
	c.viewport.GotoBottom()
}

// Messages returns a copy of the rendered turns, excluding the welcome message.
func (c *Chat) Messages() []api.Message {
	out := make([]api.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// IsShowingWelcome reports whether the welcome message is displayed.
func (c *Chat) IsShowingWelcome() bool {
	return c.content == contentWelcome
}

// IsShowingLoadError reports whether the load failure notice is displayed.
func (c *Chat) IsShowingLoadError() bool {
	return c.content == contentLoadError
}

// LastAssistantMessage returns the most recent assistant turn, or "".
func (c *Chat) LastAssistantMessage() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Sender == api.SenderAssistant {
			return c.messages[i].Content
		}
	}
	return ""
}

// SetInputEnabled enables or disables typing into the input.
func (c *Chat) SetInputEnabled(enabled bool) {
	c.inputEnabled = enabled
	if enabled && c.focused {
		c.input.Focus()
	} else if !enabled {
		c.input.Blur()
	}
}

// InputEnabled reports whether the input accepts typing.
func (c *Chat) InputEnabled() bool {
	return c.inputEnabled
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// SetInput replaces the input text.
func (c *Chat) SetInput(text string) {
	c.input.SetValue(text)
}

// AppendInput adds dictated text to the input, separated by a space.
func (c *Chat) AppendInput(text string) {
	current := c.input.Value()
	if current != "" && !strings.HasSuffix(current, " ") && !strings.HasSuffix(current, "\n") {
		current += " "
	}
	c.input.SetValue(current + text)
	c.input.CursorEnd()
}

// ClearInput clears and collapses the input.
func (c *Chat) ClearInput() {
	c.input.Reset()
	c.input.SetHeight(TextareaHeight)
}

// ScrollToBottom moves the viewport to the latest message.
func (c *Chat) ScrollToBottom() {
	c.viewport.GotoBottom()
}

// Refresh re-renders the history, e.g. after a theme change.
func (c *Chat) Refresh() {
	c.updateContent()
}

func (c *Chat) wrapWidth() int {
	w := c.viewport.Width()
	if w <= 0 {
		return DefaultWrapWidth
	}
	return w - 2
}

// updateContent rebuilds the viewport content from the current state.
func (c *Chat) updateContent() {
	width := c.wrapWidth()
	var sb strings.Builder

	writeTurn := func(label string, body string) {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(body)
	}

	switch c.content {
	case contentWelcome:
		writeTurn(ChatAssistantStyle.Render("Assistant:"), ChatWelcomeStyle.Render(wrapText(WelcomeMessage, width)))
	case contentLoadError:
		writeTurn(ChatAssistantStyle.Render("Assistant:"), ChatNoticeStyle.Render(wrapText(LoadErrorMessage, width)))
	}

	for _, msg := range c.messages {
		if msg.Sender == api.SenderUser {
			writeTurn(ChatUserStyle.Render("You:"), ChatMessageStyle.Render(wrapText(msg.Content, width)))
		} else {
			writeTurn(ChatAssistantStyle.Render("Assistant:"), renderMarkdown(msg.Content, width))
		}
	}

	if c.waiting {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderWaiting(c.spinner.Verb, c.spinner.Idx, time.Since(c.waitStart)))
	} else if c.completion >= 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderCompletionFlash(c.completion))
	}

	c.viewport.SetContent(sb.String())
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case StopwatchTickMsg:
		return c, c.handleStopwatchTick()

	case CompletionFlashTickMsg:
		return c, c.handleCompletionFlashTick()

	case SelectionFlashTickMsg:
		return c, c.handleSelectionFlashTick()

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			return c, c.handleMouseClick(msg.X-1, msg.Y-1)
		}
		return c, nil

	case tea.MouseMotionMsg:
		if c.selection.Active {
			c.EndSelection(msg.X-1, msg.Y-1)
		}
		return c, nil

	case tea.MouseReleaseMsg:
		if c.selection.Active {
			c.EndSelection(msg.X-1, msg.Y-1)
			c.SelectionStop()
			return c, c.CopySelectedText()
		}
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.PgUp, keys.PgDown, "ctrl+u", "ctrl+d", "ctrl+home", "ctrl+end":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if !c.focused || !c.inputEnabled {
			return c, nil
		}
		c.SelectionClear()
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmds []tea.Cmd
	if c.focused && c.inputEnabled {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	history := c.selectionView(c.viewport.View())
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(history)

	inputStyle := ChatInputStyle
	if c.focused && c.inputEnabled {
		inputStyle = ChatInputFocusedStyle
	}
	var inputView string
	if c.inputEnabled {
		inputView = c.input.View()
	} else {
		inputView = StatusLoadingStyle.Render("Waiting for a reply...")
	}
	inputArea := inputStyle.Width(c.width).Render(inputView)

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
