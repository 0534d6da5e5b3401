package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Error("new modal should be hidden")
	}
	if m.View(80, 24) != "" {
		t.Error("hidden modal should render nothing")
	}

	m.Show(NewAlertState("Error", "boom"))
	if !m.IsVisible() {
		t.Error("modal should be visible after Show")
	}

	m.SetError("bad input")
	if m.GetError() != "bad input" {
		t.Errorf("GetError() = %q", m.GetError())
	}

	m.Hide()
	if m.IsVisible() || m.GetError() != "" {
		t.Error("Hide should clear state and error")
	}
}

func TestModal_ShowClearsError(t *testing.T) {
	m := NewModal()
	m.Show(NewAlertState("A", "a"))
	m.SetError("old")
	m.Show(NewAlertState("B", "b"))
	if m.GetError() != "" {
		t.Error("Show should reset the error")
	}
}

func TestModal_ViewRendersErrorAndContent(t *testing.T) {
	m := NewModal()
	m.Show(NewAlertState("Delete failed", "Could not delete the conversation."))
	m.SetError("try later")

	view := ansi.Strip(m.View(100, 30))
	for _, want := range []string{"Delete failed", "Could not delete the conversation.", "try later"} {
		if !strings.Contains(view, want) {
			t.Errorf("modal view should contain %q", want)
		}
	}
}

func TestConfirmDeleteState_DefaultsToCancel(t *testing.T) {
	s := NewConfirmDeleteState("thread_1", "Admissions")

	if s.ThreadID != "thread_1" {
		t.Errorf("ThreadID = %q", s.ThreadID)
	}
	if s.Confirmed() {
		t.Error("Cancel should be preselected")
	}
	if s.Completed() {
		t.Error("form should not be completed yet")
	}
	view := ansi.Strip(s.Render())
	for _, want := range []string{"Delete", "Cancel", "Admissions"} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm view should contain %q", want)
		}
	}
}

func TestConfirmDeleteState_ToggleChoosesDelete(t *testing.T) {
	s := NewConfirmDeleteState("thread_1", "Admissions")

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if !s.Confirmed() {
		t.Error("moving left should select Delete")
	}
}

func TestConfirmDeleteState_EnterIsLeftToCaller(t *testing.T) {
	s := NewConfirmDeleteState("thread_1", "Admissions")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("Enter should not be handled by the form")
	}
	if s.Completed() {
		t.Error("Enter should not complete the form")
	}
}

func TestOptionsState_Choice(t *testing.T) {
	s := NewOptionsState("thread_1", "Admissions")
	if s.Choice() != OptionRename {
		t.Errorf("Choice() = %q, want %q", s.Choice(), OptionRename)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.Choice() != OptionDelete {
		t.Errorf("Choice() = %q after down, want %q", s.Choice(), OptionDelete)
	}
}

func TestHelpState_RendersSections(t *testing.T) {
	s := NewHelpStateFromSections([]HelpSection{
		{Title: "Conversations", Bindings: []KeyBinding{{Key: "r", Desc: "Rename conversation"}}},
		{Title: "General", Bindings: []KeyBinding{{Key: "ctrl+t", Desc: "Toggle theme"}}},
	})
	view := ansi.Strip(s.Render())
	for _, want := range []string{"Keyboard Shortcuts", "Conversations", "Rename conversation", "General", "Toggle theme"} {
		if !strings.Contains(view, want) {
			t.Errorf("help should mention %q", want)
		}
	}
	if strings.Index(view, "Conversations") > strings.Index(view, "General") {
		t.Error("sections should keep their order")
	}
}
