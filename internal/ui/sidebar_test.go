package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/threadchat/internal/api"
)

func testConversations() []api.Conversation {
	return []api.Conversation{
		{ThreadID: "thread_3", Title: "Math 101"},
		{ThreadID: "thread_2", Title: ""},
		{ThreadID: "thread_1", Title: "Admissions"},
	}
}

func keyPress(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func TestSidebar_SetConversations(t *testing.T) {
	s := NewSidebar()
	s.SetConversations(testConversations())

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if sel := s.SelectedConversation(); sel == nil || sel.ThreadID != "thread_3" {
		t.Errorf("cursor should start on the first item, got %+v", sel)
	}

	// Rebuild keeps the cursor on the same conversation
	s.SelectConversation("thread_1")
	s.SetConversations([]api.Conversation{{ThreadID: "thread_4"}, {ThreadID: "thread_1"}})
	if sel := s.SelectedConversation(); sel == nil || sel.ThreadID != "thread_1" {
		t.Errorf("cursor should follow thread_1 across rebuilds, got %+v", sel)
	}
	if s.Contains("thread_3") {
		t.Error("rebuild should drop conversations no longer listed")
	}
}

func TestSidebar_ActiveMarksAtMostOne(t *testing.T) {
	s := NewSidebar()
	s.SetConversations(testConversations())

	s.SetActive("thread_2")
	active := 0
	for _, c := range s.Conversations() {
		if s.IsActive(c.ThreadID) {
			active++
		}
	}
	if active != 1 || s.ActiveID() != "thread_2" {
		t.Errorf("expected exactly thread_2 active, got %d active (%q)", active, s.ActiveID())
	}

	s.SetActive("thread_unlisted")
	if s.ActiveID() != "" {
		t.Errorf("unlisted active id should leave nothing active, got %q", s.ActiveID())
	}
}

func TestSidebar_Promote(t *testing.T) {
	s := NewSidebar()
	s.SetConversations(testConversations())

	if !s.Promote("thread_1", "") {
		t.Fatal("Promote should succeed for a listed id")
	}
	convs := s.Conversations()
	if convs[0].ThreadID != "thread_1" || convs[1].ThreadID != "thread_3" || convs[2].ThreadID != "thread_2" {
		t.Errorf("unexpected order after promote: %+v", convs)
	}
	if convs[0].Title != "Admissions" {
		t.Error("empty title should keep the listed title")
	}

	s.Promote("thread_2", "Scholarships")
	if c, _ := s.Get("thread_2"); c.Title != "Scholarships" {
		t.Errorf("server title should be adopted, got %q", c.Title)
	}

	if s.Promote("thread_missing", "") {
		t.Error("Promote should report false for an unlisted id")
	}
}

func TestSidebar_Remove(t *testing.T) {
	s := NewSidebar()
	s.SetConversations(testConversations())
	s.SelectConversation("thread_1")

	if !s.Remove("thread_1") {
		t.Fatal("Remove should succeed for a listed id")
	}
	if s.Len() != 2 || s.Contains("thread_1") {
		t.Errorf("thread_1 should be gone, have %+v", s.Conversations())
	}
	if sel := s.SelectedConversation(); sel == nil {
		t.Error("cursor should clamp to a remaining item")
	}
	if s.Remove("thread_1") {
		t.Error("second Remove should report false")
	}
}

func TestSidebar_Navigation(t *testing.T) {
	s := NewSidebar()
	s.SetFocused(true)
	s.SetConversations(testConversations())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(keyPress('j'))
	if sel := s.SelectedConversation(); sel.ThreadID != "thread_1" {
		t.Errorf("expected thread_1 after two downs, got %s", sel.ThreadID)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sel := s.SelectedConversation(); sel.ThreadID != "thread_1" {
		t.Error("cursor should stop at the last item")
	}
	s.Update(keyPress('k'))
	if sel := s.SelectedConversation(); sel.ThreadID != "thread_2" {
		t.Errorf("expected thread_2 after up, got %s", sel.ThreadID)
	}
}

func TestSidebar_UnfocusedIgnoresKeys(t *testing.T) {
	s := NewSidebar()
	s.SetConversations(testConversations())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sel := s.SelectedConversation(); sel.ThreadID != "thread_3" {
		t.Error("unfocused sidebar should ignore keys")
	}
}

func TestSidebar_RenameCommitsOnEnterEscTab(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape, tea.KeyTab} {
		s := NewSidebar()
		s.SetFocused(true)
		s.SetConversations(testConversations())

		s.StartRename()
		if !s.IsRenaming() || s.RenamingID() != "thread_3" {
			t.Fatal("StartRename should open the editor on the selected item")
		}

		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if s.IsRenaming() {
			t.Errorf("key %q should close the editor", string(code))
		}
		if cmd == nil {
			t.Fatalf("key %q should emit a commit", string(code))
		}
		commit, ok := cmd().(RenameCommitMsg)
		if !ok {
			t.Fatalf("expected RenameCommitMsg, got %T", cmd())
		}
		if commit.ThreadID != "thread_3" || commit.Original != "Math 101" || commit.Value != "Math 101" {
			t.Errorf("unexpected commit %+v", commit)
		}
		if commit.Changed() {
			t.Error("unchanged value should not count as a change")
		}
	}
}

func TestSidebar_RenamePrefillsPlaceholder(t *testing.T) {
	s := NewSidebar()
	s.SetFocused(true)
	s.SetConversations(testConversations())
	s.SelectConversation("thread_2")

	s.StartRename()
	commit := s.CommitRename()
	if commit.Original != api.UntitledPlaceholder {
		t.Errorf("untitled conversation should pre-fill %q, got %q", api.UntitledPlaceholder, commit.Original)
	}
}

func TestRenameCommitMsg_Changed(t *testing.T) {
	tests := []struct {
		name string
		msg  RenameCommitMsg
		want bool
	}{
		{"new value", RenameCommitMsg{Original: "Math 101", Value: "Algebra"}, true},
		{"same value", RenameCommitMsg{Original: "Math 101", Value: "Math 101"}, false},
		{"empty value", RenameCommitMsg{Original: "Math 101", Value: ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.Changed(); got != tt.want {
				t.Errorf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSidebar_Search(t *testing.T) {
	s := NewSidebar()
	s.SetFocused(true)
	s.SetConversations(testConversations())

	s.EnterSearchMode()
	for _, r := range "math" {
		s.Update(keyPress(r))
	}
	display := s.displayConversations()
	if len(display) != 1 || display[0].ThreadID != "thread_3" {
		t.Errorf("filter should match Math 101 only, got %+v", display)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.IsSearchMode() || len(s.displayConversations()) != 3 {
		t.Error("Esc should clear the filter")
	}
}

func TestSidebar_SearchMatchesPlaceholder(t *testing.T) {
	s := NewSidebar()
	s.SetFocused(true)
	s.SetConversations(testConversations())

	s.EnterSearchMode()
	s.applyFilter("new conv")
	display := s.displayConversations()
	if len(display) != 1 || display[0].ThreadID != "thread_2" {
		t.Errorf("untitled conversations should match their placeholder, got %+v", display)
	}
}

func TestSidebar_SendingSpinner(t *testing.T) {
	s := NewSidebar()
	s.SetConversations(testConversations())

	if _, cmd := s.Update(SidebarTickMsg{}); cmd != nil {
		t.Error("tick should stop when nothing is sending")
	}
	s.SetSending("thread_3", true)
	if _, cmd := s.Update(SidebarTickMsg{}); cmd == nil {
		t.Error("tick should continue while a reply is pending")
	}
	s.SetSending("thread_3", false)
	if s.IsSending() {
		t.Error("IsSending should be false once cleared")
	}
}

func TestSidebar_View(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 12)
	s.SetConversations(testConversations())
	s.SetActive("thread_1")

	view := ansi.Strip(s.View())
	for _, want := range []string{"Math 101", api.UntitledPlaceholder, "Admissions", activeMarker} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Count(view, activeMarker) != 1 {
		t.Error("exactly one item should carry the active marker")
	}
}

func TestSidebar_ViewEmpty(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 12)

	if !strings.Contains(ansi.Strip(s.View()), "No conversations yet.") {
		t.Error("empty sidebar should say so")
	}
}

func TestSidebar_ViewTruncatesLongTitles(t *testing.T) {
	s := NewSidebar()
	s.SetSize(20, 8)
	s.SetConversations([]api.Conversation{{ThreadID: "t", Title: strings.Repeat("Graduate programs ", 5)}})

	view := ansi.Strip(s.View())
	if !strings.Contains(view, "…") {
		t.Error("long titles should be truncated with an ellipsis")
	}
	for _, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Errorf("line %q is %d wide, want <= 20", line, w)
		}
	}
}
