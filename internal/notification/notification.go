// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/threadchat/internal/logger"
)

// AppName is the notification title.
const AppName = "threadchat"

// maxPreview is how much of a reply is shown in the notification body.
const maxPreview = 120

var notify = beeep.Notify

// SetNotifier swaps the notification backend (for tests).
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title)
	// Empty icon - beeep picks the platform default
	if err := notify(title, message, ""); err != nil {
		log.Warn("failed to send", "error", err)
		return err
	}
	return nil
}

// ReplyArrived announces an assistant reply for the named conversation.
func ReplyArrived(conversation, reply string) error {
	return Send(AppName, conversation+": "+Preview(reply))
}

// Preview shortens text to a single notification-sized line.
func Preview(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' || r == '\r' {
			runes[i] = ' '
		}
	}
	if len(runes) > maxPreview {
		return string(runes[:maxPreview-1]) + "…"
	}
	return string(runes)
}
