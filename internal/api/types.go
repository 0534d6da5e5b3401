package api

import (
	"context"
	"strings"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// UntitledPlaceholder is shown for conversations whose title is empty.
const UntitledPlaceholder = "New conversation"

// NoResponseText is used when a chat reply carries neither content nor error.
const NoResponseText = "No response received"

// Conversation is one entry of the history list.
type Conversation struct {
	ThreadID string `json:"thread_id"`
	Title    string `json:"title"`
}

// DisplayTitle returns the title, or a placeholder when it is blank.
func (c Conversation) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return UntitledPlaceholder
}

// Message is a single chat turn.
type Message struct {
	Content string `json:"content"`
	Sender  Sender `json:"sender"`
}

// ChatReply is the body returned by POST /chat. Exactly one of Content or
// Error is normally set; ThreadID and Title are optional confirmations.
type ChatReply struct {
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
	Title    string `json:"title,omitempty"`
}

// OK reports whether the reply carries assistant content.
func (r ChatReply) OK() bool {
	return r.Content != ""
}

// Display returns what should be rendered as the assistant turn: the content,
// or an inline error line built from the error payload.
func (r ChatReply) Display() string {
	if r.OK() {
		return r.Content
	}
	msg := r.Error
	if msg == "" {
		msg = NoResponseText
	}
	return "Error: " + msg
}

// Service is the remote chat service as the client sees it.
type Service interface {
	ListConversations(ctx context.Context) ([]Conversation, error)
	GetMessages(ctx context.Context, threadID string) ([]Message, error)
	DeleteConversation(ctx context.Context, threadID string) error
	RenameConversation(ctx context.Context, threadID, newTitle string) error
	Submit(ctx context.Context, message, threadID string) (*ChatReply, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}
