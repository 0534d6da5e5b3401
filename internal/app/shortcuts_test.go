package app

import (
	"context"
	"errors"
	"testing"

	"github.com/zhubert/threadchat/internal/keys"
	"github.com/zhubert/threadchat/internal/localstore"
	"github.com/zhubert/threadchat/internal/ui"
)

func TestShortcutRegistry_KeysAreUnique(t *testing.T) {
	seen := map[string]bool{helpShortcut.Key: true}
	for _, s := range ShortcutRegistry {
		if seen[s.Key] {
			t.Errorf("duplicate shortcut key %q", s.Key)
		}
		seen[s.Key] = true
		if s.Handler == nil {
			t.Errorf("shortcut %q has no handler", s.Key)
		}
		if s.Description == "" {
			t.Errorf("shortcut %q has no description", s.Key)
		}
	}
}

func TestToggleTheme_PersistsAndRestores(t *testing.T) {
	store := localstore.NewMemory()
	m, _ := testModelWithStore(t, newFakeService(), store)

	press(t, m, keys.CtrlT)

	if ui.CurrentThemeName() != ui.ThemeLight {
		t.Fatalf("theme = %q, want light", ui.CurrentThemeName())
	}
	got, ok, err := store.Get(context.Background(), localstore.KeyTheme)
	if err != nil || !ok || got != string(ui.ThemeLight) {
		t.Errorf("stored theme = %q, %v, %v", got, ok, err)
	}

	// A fresh session starts in the stored theme.
	ui.SetTheme(ui.DefaultTheme)
	New(m.config, newFakeService(), m.state, store, "test")
	if ui.CurrentThemeName() != ui.ThemeLight {
		t.Errorf("restored theme = %q, want light", ui.CurrentThemeName())
	}
}

func TestToggleSidebar_PersistsAndRestores(t *testing.T) {
	store := localstore.NewMemory()
	m, _ := testModelWithStore(t, newFakeService(), store)

	press(t, m, keys.CtrlB)

	if !ui.GetViewContext().SidebarCollapsed {
		t.Fatal("sidebar should be collapsed")
	}
	if m.focus != FocusChat {
		t.Error("collapsing the sidebar should focus the chat")
	}
	if !localstore.GetBool(context.Background(), store, localstore.KeySidebarCollapsed, false) {
		t.Error("collapsed state should be persisted")
	}

	ui.GetViewContext().SetSidebarCollapsed(false)
	restored := New(m.config, newFakeService(), m.state, store, "test")
	if !ui.GetViewContext().SidebarCollapsed {
		t.Error("collapsed state should be restored")
	}
	if restored.focus != FocusChat {
		t.Error("a collapsed sidebar cannot hold focus")
	}

	// Tab cannot move focus into a collapsed sidebar.
	press(t, m, keys.Tab)
	if m.focus != FocusChat {
		t.Error("tab should keep focus on the chat while collapsed")
	}

	press(t, m, keys.CtrlB)
	if ui.GetViewContext().SidebarCollapsed {
		t.Error("second toggle should expand the sidebar")
	}
}

func TestHelpModal(t *testing.T) {
	m, _ := startedModel(t, newFakeService())

	press(t, m, "?")
	help, ok := m.modal.State.(*ui.HelpState)
	if !ok || !m.modal.IsVisible() {
		t.Fatal("help modal should be shown")
	}
	if len(help.Sections) == 0 {
		t.Error("help should list shortcut sections")
	}

	press(t, m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("Esc should close help")
	}
}

func TestHelpSections_OnlyApplicable(t *testing.T) {
	m, _ := startedModel(t, newFakeService())
	m.focusChat()

	sections := m.getApplicableHelpSections(ShortcutRegistry, nil)
	for _, section := range sections {
		for _, b := range section.Bindings {
			if b.Key == "q" || b.Key == "r" {
				t.Errorf("sidebar-only shortcut %q listed while the chat is focused", b.Key)
			}
		}
	}
	if len(sections) == 0 || sections[0].Title != CategoryNavigation {
		t.Errorf("sections should follow category order, got %+v", sections)
	}
}

func TestCopyLastReply(t *testing.T) {
	m, _ := startedModel(t, newFakeService())

	m.copyLastReply()
	if got := m.footer.FlashText(); got != "No reply to copy yet" {
		t.Errorf("flash = %q", got)
	}

	drain(t, m, m.switchTo("thread_1"))
	if cmd := m.copyLastReply(); cmd == nil {
		t.Error("copy should return the clipboard command")
	}
	if got := m.footer.FlashText(); got != "Copied reply to clipboard" {
		t.Errorf("flash = %q", got)
	}
}

func TestSpeak_NoReply(t *testing.T) {
	svc := newFakeService()
	m, _ := startedModel(t, svc)

	press(t, m, keys.CtrlS)

	if got := m.footer.FlashText(); got != "No reply to speak yet" {
		t.Errorf("flash = %q", got)
	}
	if len(svc.speakCalls()) != 0 {
		t.Error("nothing should be synthesized")
	}
}

func TestSpeak_MissingPlayer(t *testing.T) {
	svc := newFakeService()
	m, _ := startedModel(t, svc)
	drain(t, m, m.switchTo("thread_1"))
	m.config.AudioPlayer = "threadchat-missing-player-binary"

	press(t, m, keys.CtrlS)

	if len(svc.speakCalls()) != 0 {
		t.Error("speech should not be requested without a player")
	}
	if got := m.footer.FlashText(); got != "Audio player not found: threadchat-missing-player-binary" {
		t.Errorf("flash = %q", got)
	}
}

func TestSpeech_FailureFlashes(t *testing.T) {
	m, _ := startedModel(t, newFakeService())

	m.Update(SpeechMsg{Err: errors.New("boom")})

	if got := m.footer.FlashText(); got != "Could not play the reply" {
		t.Errorf("flash = %q", got)
	}
}

func TestDictation_NotConfigured(t *testing.T) {
	m, _ := startedModel(t, newFakeService())
	m.config.DictationCommand = ""

	press(t, m, keys.CtrlR)

	if got := m.footer.FlashText(); got != "Set dictation_command in config.json to enable dictation" {
		t.Errorf("flash = %q", got)
	}
	if m.dictating {
		t.Error("dictation should not start")
	}
}

func TestDictation_AppendsTranscript(t *testing.T) {
	m, _ := startedModel(t, newFakeService())
	m.focusChat()
	typeText(t, m, "Question:")
	m.dictating = true

	m.Update(DictationMsg{Text: "when is the deadline"})

	if got := m.chat.GetInput(); got != "Question: when is the deadline" {
		t.Errorf("input = %q", got)
	}
	if m.dictating {
		t.Error("dictation should be finished")
	}
}

func TestDictation_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		msg  DictationMsg
		want string
	}{
		{"failure", DictationMsg{Err: errors.New("no microphone")}, "Dictation failed"},
		{"silence", DictationMsg{}, "Nothing was heard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := startedModel(t, newFakeService())
			m.Update(tt.msg)
			if got := m.footer.FlashText(); got != tt.want {
				t.Errorf("flash = %q, want %q", got, tt.want)
			}
			if m.chat.GetInput() != "" {
				t.Error("input should be unchanged")
			}
		})
	}
}

func TestDictation_BlockedWhileSending(t *testing.T) {
	m, _ := startedModel(t, newFakeService())
	m.config.DictationCommand = "echo hi"
	m.chat.SetInputEnabled(false)

	m.startDictation()

	if m.dictating {
		t.Error("dictation should not start while the input is disabled")
	}
	if got := m.footer.FlashText(); got != "Wait for the reply before dictating" {
		t.Errorf("flash = %q", got)
	}
}

func TestReload_RefetchesListAndActiveThread(t *testing.T) {
	svc := newFakeService()
	m, _ := startedModel(t, svc)
	drain(t, m, m.switchTo("thread_1"))
	listCalls := svc.listCallCount()

	press(t, m, keys.CtrlL)

	if svc.listCallCount() != listCalls+1 {
		t.Error("reload should refresh the list")
	}
	svc.mu.Lock()
	gets := append([]string(nil), svc.getCalls...)
	svc.mu.Unlock()
	if gets[len(gets)-1] != "thread_1" {
		t.Errorf("last fetch = %q, want thread_1", gets[len(gets)-1])
	}
}
