package app

import "github.com/zhubert/threadchat/internal/api"

// ConversationsLoadedMsg carries the result of a history list fetch.
type ConversationsLoadedMsg struct {
	Conversations []api.Conversation
	Err           error
}

// MessagesLoadedMsg carries a thread's messages. It is dropped when ThreadID
// is no longer the active thread by the time it arrives.
type MessagesLoadedMsg struct {
	ThreadID string
	Messages []api.Message
	Err      error
}

// SubmitResultMsg settles a submission.
type SubmitResultMsg struct {
	ThreadID string
	Reply    *api.ChatReply
	Err      error
}

// RenameResultMsg reports a finished rename request.
type RenameResultMsg struct {
	ThreadID string
	Err      error
}

// DeleteResultMsg reports a finished delete request.
type DeleteResultMsg struct {
	ThreadID string
	Err      error
}

// SpeechMsg reports synthesized audio that has started playing, or why it
// could not.
type SpeechMsg struct {
	Err error
}

// DictationMsg carries transcribed text from the dictation command.
type DictationMsg struct {
	Text string
	Err  error
}
