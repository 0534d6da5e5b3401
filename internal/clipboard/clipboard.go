// Package clipboard writes text to the native system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/threadchat/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the clipboard. Safe to call multiple times; the first
// result is remembered.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.WithComponent("clipboard").Debug("initialized")
	})
	return initErr
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadText returns the clipboard's text contents, or "" when it holds none.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}
