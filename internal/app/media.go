package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	pkgerrors "github.com/zhubert/threadchat/internal/errors"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/process"
	"github.com/zhubert/threadchat/internal/ui"
)

// speakLastReply synthesizes the latest assistant reply and plays it.
// Starting a new playback stops the current one.
func (m *Model) speakLastReply() tea.Cmd {
	text := m.chat.LastAssistantMessage()
	if text == "" {
		return m.ShowFlashInfo("No reply to speak yet")
	}
	if !process.Installed(m.config.GetAudioPlayer()) {
		return m.ShowFlashWarning("Audio player not found: " + m.config.GetAudioPlayer())
	}

	svc := m.svc
	player := m.player
	ctx, cancel := m.requestContext()
	speak := func() tea.Msg {
		defer cancel()
		audio, err := svc.Speak(ctx, text)
		if err != nil {
			return SpeechMsg{Err: err}
		}
		return SpeechMsg{Err: player.Play(audio)}
	}
	return tea.Batch(m.ShowFlashInfo("Synthesizing speech..."), speak)
}

func (m *Model) handleSpeech(msg SpeechMsg) tea.Cmd {
	if msg.Err != nil {
		logger.WithComponent("speech").Warn("speech failed", "error", msg.Err)
		return m.ShowFlashError("Could not play the reply")
	}
	m.footer.ClearFlash()
	return nil
}

// startDictation runs the configured dictation command and appends its
// transcript to the input.
func (m *Model) startDictation() tea.Cmd {
	cmdline := m.config.GetDictationCommand()
	if cmdline == "" {
		return m.ShowFlashInfo("Set dictation_command in config.json to enable dictation")
	}
	if m.dictating {
		return nil
	}
	if !m.chat.InputEnabled() {
		return m.ShowFlashWarning("Wait for the reply before dictating")
	}

	m.dictating = true
	dictate := func() tea.Msg {
		text, err := process.Dictate(context.Background(), cmdline)
		return DictationMsg{Text: text, Err: err}
	}
	return tea.Batch(m.ShowFlashInfo("Listening..."), dictate)
}

func (m *Model) handleDictation(msg DictationMsg) tea.Cmd {
	m.dictating = false
	if msg.Err != nil {
		logger.WithComponent("dictation").Warn("dictation failed", "error", msg.Err, "kind", pkgerrors.GetKind(msg.Err))
		return m.ShowFlashError("Dictation failed")
	}
	if msg.Text == "" {
		return m.ShowFlashWarning("Nothing was heard")
	}
	m.footer.ClearFlash()
	m.chat.AppendInput(msg.Text)
	m.focusChat()
	return nil
}

// copyLastReply puts the latest assistant reply on the clipboard.
func (m *Model) copyLastReply() tea.Cmd {
	text := m.chat.LastAssistantMessage()
	if text == "" {
		return m.ShowFlashInfo("No reply to copy yet")
	}
	return tea.Batch(ui.CopyToClipboard(text), m.ShowFlashSuccess("Copied reply to clipboard"))
}
