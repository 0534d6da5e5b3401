package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/threadchat/internal/api"
)

func newSizedChat() *Chat {
	c := NewChat()
	c.SetSize(80, 30)
	return c
}

func chatText(c *Chat) string {
	return ansi.Strip(c.viewport.View())
}

func TestChat_ShowWelcome(t *testing.T) {
	c := newSizedChat()
	c.AppendUserMessage("leftover")

	c.ShowWelcome()

	if !c.IsShowingWelcome() {
		t.Error("IsShowingWelcome should be true")
	}
	if len(c.Messages()) != 0 {
		t.Error("welcome should replace any messages")
	}
	if !strings.Contains(chatText(c), "BK Assistant") {
		t.Error("welcome message should be rendered")
	}
}

func TestChat_ShowLoadError(t *testing.T) {
	c := newSizedChat()
	c.ShowLoadError()

	if !c.IsShowingLoadError() || c.IsShowingWelcome() {
		t.Error("load error notice should be shown instead of the welcome")
	}
	if !strings.Contains(chatText(c), "Could not load this conversation") {
		t.Error("load error notice should be rendered")
	}
}

func TestChat_SetMessages(t *testing.T) {
	c := newSizedChat()
	c.SetMessages([]api.Message{
		{Content: "first question", Sender: api.SenderUser},
		{Content: "first answer", Sender: api.SenderAssistant},
	})

	if c.IsShowingWelcome() {
		t.Error("history should replace the welcome message")
	}
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[0].Content != "first question" || msgs[1].Content != "first answer" {
		t.Errorf("unexpected messages %+v", msgs)
	}
	text := chatText(c)
	if strings.Index(text, "first question") > strings.Index(text, "first answer") {
		t.Error("messages should render in arrival order")
	}
}

func TestChat_SetMessagesEmptyShowsWelcome(t *testing.T) {
	c := newSizedChat()
	c.SetMessages(nil)

	if !c.IsShowingWelcome() {
		t.Error("empty history should show the welcome message")
	}
}

func TestChat_SetMessagesScrollsToBottom(t *testing.T) {
	c := newSizedChat()
	var msgs []api.Message
	for i := 0; i < 40; i++ {
		msgs = append(msgs, api.Message{Content: "line", Sender: api.SenderUser})
	}
	msgs = append(msgs, api.Message{Content: "the very last reply", Sender: api.SenderAssistant})

	c.SetMessages(msgs)

	if !c.viewport.AtBottom() {
		t.Error("viewport should be scrolled to the bottom")
	}
	if !strings.Contains(chatText(c), "the very last reply") {
		t.Error("last message should be visible")
	}
}

func TestChat_AppendKeepsWelcome(t *testing.T) {
	c := newSizedChat()
	c.ShowWelcome()
	c.AppendUserMessage("Hello")

	text := chatText(c)
	if !strings.Contains(text, "BK Assistant") || !strings.Contains(text, "Hello") {
		t.Error("welcome should stay above the first user message")
	}
}

func TestChat_LastAssistantMessage(t *testing.T) {
	c := newSizedChat()
	if c.LastAssistantMessage() != "" {
		t.Error("empty chat has no assistant message")
	}
	c.ShowWelcome()
	if c.LastAssistantMessage() != "" {
		t.Error("welcome message is not a reply")
	}

	c.AppendUserMessage("q1")
	c.AppendAssistantMessage("a1")
	c.AppendUserMessage("q2")
	if got := c.LastAssistantMessage(); got != "a1" {
		t.Errorf("LastAssistantMessage() = %q, want a1", got)
	}
}

func TestChat_InputEnabled(t *testing.T) {
	c := newSizedChat()
	c.SetFocused(true)

	c.Update(keyPress('h'))
	if c.GetInput() != "h" {
		t.Fatalf("GetInput() = %q, want h", c.GetInput())
	}

	c.SetInputEnabled(false)
	c.Update(keyPress('i'))
	if c.GetInput() != "h" {
		t.Error("disabled input should ignore typing")
	}
	if !strings.Contains(ansi.Strip(c.View()), "Waiting for a reply") {
		t.Error("disabled input should show the waiting hint")
	}

	c.SetInputEnabled(true)
	c.Update(keyPress('i'))
	if c.GetInput() != "hi" {
		t.Errorf("GetInput() = %q, want hi", c.GetInput())
	}
}

func TestChat_ClearInput(t *testing.T) {
	c := newSizedChat()
	c.SetInput("draft")
	c.ClearInput()

	if c.GetInput() != "" {
		t.Errorf("GetInput() = %q after ClearInput", c.GetInput())
	}
}

func TestChat_AppendInput(t *testing.T) {
	tests := []struct {
		current, add, want string
	}{
		{"", "xin chào", "xin chào"},
		{"hello", "world", "hello world"},
		{"hello ", "world", "hello world"},
	}
	for _, tt := range tests {
		c := newSizedChat()
		c.SetInput(tt.current)
		c.AppendInput(tt.add)
		if c.GetInput() != tt.want {
			t.Errorf("AppendInput(%q) on %q = %q, want %q", tt.add, tt.current, c.GetInput(), tt.want)
		}
	}
}

func TestChat_Waiting(t *testing.T) {
	c := newSizedChat()

	cmd := c.SetWaiting(true)
	if cmd == nil {
		t.Error("SetWaiting(true) should start the tick")
	}
	if !c.IsWaiting() {
		t.Error("IsWaiting should be true")
	}
	if !strings.Contains(chatText(c), "...") {
		t.Error("waiting indicator should be rendered")
	}
	if _, cmd := c.Update(StopwatchTickMsg{}); cmd == nil {
		t.Error("tick should continue while waiting")
	}

	c.SetWaiting(false)
	if _, cmd := c.Update(StopwatchTickMsg{}); cmd != nil {
		t.Error("tick should stop once the reply arrives")
	}
}

func TestChat_CompletionFlash(t *testing.T) {
	c := newSizedChat()
	if c.StartCompletionFlash() == nil {
		t.Fatal("StartCompletionFlash should return a tick")
	}
	for i := 0; i < 3; i++ {
		c.Update(CompletionFlashTickMsg{})
	}
	if c.IsCompletionFlashing() {
		t.Error("flash should end after three ticks")
	}
}

func TestChat_ScrollKeysReachViewport(t *testing.T) {
	c := newSizedChat()
	c.SetFocused(true)
	var msgs []api.Message
	for i := 0; i < 60; i++ {
		msgs = append(msgs, api.Message{Content: "row", Sender: api.SenderUser})
	}
	c.SetMessages(msgs)

	c.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if c.viewport.AtBottom() {
		t.Error("pgup should scroll the history")
	}
	if c.GetInput() != "" {
		t.Error("scroll keys should not reach the input")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{12, "12s"},
		{75, "1m15s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(secondsDuration(tt.seconds)); got != tt.want {
			t.Errorf("formatElapsed(%ds) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
