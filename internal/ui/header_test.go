package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHeader_DefaultsToNewChat(t *testing.T) {
	h := NewHeader()
	h.SetWidth(60)

	if h.Conversation() != NewChatTitle {
		t.Errorf("Conversation() = %q, want %q", h.Conversation(), NewChatTitle)
	}
	if !strings.Contains(ansi.Strip(h.View()), NewChatTitle) {
		t.Error("header should show the new chat title")
	}
}

func TestHeader_SetConversation(t *testing.T) {
	h := NewHeader()
	h.SetWidth(60)

	h.SetConversation("Math 101")
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "threadchat") {
		t.Error("header should contain the app name")
	}
	if !strings.Contains(view, "Math 101") {
		t.Error("header should contain the conversation title")
	}

	h.SetConversation("")
	if h.Conversation() != NewChatTitle {
		t.Error("empty title should show the new chat title")
	}
}

func TestHeader_Sending(t *testing.T) {
	h := NewHeader()
	h.SetWidth(60)
	h.SetSending(true)

	if !strings.Contains(ansi.Strip(h.View()), "(sending)") {
		t.Error("header should mark a pending reply")
	}
}

func TestHeader_TruncatesLongTitle(t *testing.T) {
	h := NewHeader()
	h.SetWidth(30)
	h.SetConversation(strings.Repeat("very long title ", 10))

	view := ansi.Strip(h.View())
	if w := ansi.StringWidth(view); w > 30 {
		t.Errorf("header width = %d, want <= 30", w)
	}
	if !strings.Contains(view, "…") {
		t.Error("truncated title should end with an ellipsis")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#7C3AED", 0x7C, 0x3A, 0xED},
		{"#FFFFFF", 255, 255, 255},
		{"bad", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			r, g, b := parseHexColor(tt.hex)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("parseHexColor(%q) = %d,%d,%d", tt.hex, r, g, b)
			}
		})
	}
}
