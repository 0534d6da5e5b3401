package notification

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/zhubert/threadchat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct{ title, message string }
	err   error
}

func (m *mockNotification) notify(title, message string, _ any) error {
	m.calls = append(m.calls, struct{ title, message string }{title, message})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		mockErr     error
		expectError bool
	}{
		{"successful notification", nil, false},
		{"notification error", errors.New("dbus unavailable"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send("Title", "Message")
			if (err != nil) != tt.expectError {
				t.Errorf("Send() error = %v, expectError %v", err, tt.expectError)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != "Title" || mock.calls[0].message != "Message" {
				t.Errorf("unexpected call %+v", mock.calls[0])
			}
		})
	}
}

func TestReplyArrived(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	defer ResetNotifier()

	if err := ReplyArrived("Tuition", "Học phí năm nay\nlà 30 triệu"); err != nil {
		t.Fatalf("ReplyArrived() error = %v", err)
	}

	call := mock.calls[0]
	if call.title != AppName {
		t.Errorf("title = %q, want %q", call.title, AppName)
	}
	if call.message != "Tuition: Học phí năm nay là 30 triệu" {
		t.Errorf("message = %q", call.message)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("á", 300)

	got := Preview(long)
	if n := len([]rune(got)); n != maxPreview {
		t.Errorf("preview length = %d runes, want %d", n, maxPreview)
	}
	if !strings.HasSuffix(got, "…") {
		t.Error("truncated preview should end with an ellipsis")
	}
	if Preview("short") != "short" {
		t.Error("short text should be unchanged")
	}
}
