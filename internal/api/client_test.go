package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/zhubert/threadchat/internal/errors"
	"github.com/zhubert/threadchat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// newTestClient points a client at handler with a fixed cache-bust clock.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClientWithHTTP(server.Client(), server.URL)
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListConversations(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/history", r.URL.Path)
		assert.Equal(t, "1700000000000", r.URL.Query().Get("_t"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(t, w, []map[string]string{
			{"thread_id": "t2", "title": "Algebra"},
			{"thread_id": "t1", "title": ""},
		})
	}))

	convos, err := c.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convos, 2)
	assert.Equal(t, "t2", convos[0].ThreadID, "server order is preserved")
	assert.Equal(t, "Algebra", convos[0].DisplayTitle())
	assert.Equal(t, UntitledPlaceholder, convos[1].DisplayTitle())
}

func TestListConversations_NullBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))

	convos, err := c.ListConversations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, convos)
	assert.Empty(t, convos)
}

func TestGetMessages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history/thread_1_abc", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("_t"))
		writeJSON(t, w, map[string]interface{}{
			"messages": []map[string]string{
				{"content": "Hello", "sender": "user"},
				{"content": "Hi!", "sender": "assistant"},
			},
		})
	}))

	msgs, err := c.GetMessages(context.Background(), "thread_1_abc")
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Content: "Hello", Sender: SenderUser},
		{Content: "Hi!", Sender: SenderAssistant},
	}, msgs)
}

func TestGetMessages_MissingMessages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))

	msgs, err := c.GetMessages(context.Background(), "t1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestGetMessages_EmptyThreadID(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)

	_, err := c.GetMessages(context.Background(), "")
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindInvalid))
}

func TestDeleteConversation(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/history/t1", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery, "delete carries no cache buster")
		writeJSON(t, w, map[string]string{"status": "deleted"})
	}))

	require.NoError(t, c.DeleteConversation(context.Background(), "t1"))
	assert.True(t, called)
}

func TestDeleteConversation_ServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	err := c.DeleteConversation(context.Background(), "t1")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindHTTPStatus))
	assert.Equal(t, http.StatusInternalServerError, pkgerrors.StatusCode(err))
}

func TestRenameConversation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/history/t1/rename", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("_t"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"new_title": "Algebra"}, body)
		writeJSON(t, w, map[string]string{"status": "ok"})
	}))

	require.NoError(t, c.RenameConversation(context.Background(), "t1", "Algebra"))
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantDisplay string
		wantOK      bool
	}{
		{"content", `{"content":"Hi!"}`, "Hi!", true},
		{"error payload", `{"error":"Agent not ready"}`, "Error: Agent not ready", false},
		{"empty payload", `{}`, "Error: " + NoResponseText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat", r.URL.Path)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, map[string]string{"message": "Hello", "thread_id": "thread_1_abc"}, body)
				io.WriteString(w, tt.response)
			}))

			reply, err := c.Submit(context.Background(), "Hello", "thread_1_abc")
			require.NoError(t, err, "an error payload is not a transport error")
			assert.Equal(t, tt.wantOK, reply.OK())
			assert.Equal(t, tt.wantDisplay, reply.Display())
		})
	}
}

func TestSubmit_ServerAssignsThread(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"content":"Hi!","thread_id":"srv-42","title":"Greetings"}`)
	}))

	reply, err := c.Submit(context.Background(), "Hello", "thread_1_abc")
	require.NoError(t, err)
	assert.Equal(t, "srv-42", reply.ThreadID)
	assert.Equal(t, "Greetings", reply.Title)
}

func TestSubmit_BadJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"error":"Agent not ready"}, 500]`)
	}))

	_, err := c.Submit(context.Background(), "Hello", "t1")
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindDecode), "got %v", err)
}

func TestSubmit_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c := NewClient(base, time.Second)
	_, err := c.Submit(context.Background(), "Hello", "t1")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindNetwork), "got %v", err)
	assert.True(t, pkgerrors.IsTransport(err))
}

func TestSubmit_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Submit(ctx, "Hello", "t1")
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindTimeout), "got %v", err)
}

func TestSpeak(t *testing.T) {
	audio := []byte{0x49, 0x44, 0x33, 0x04, 0x00}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/speak", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Xin chào", body["text"])
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))

	got, err := c.Speak(context.Background(), "Xin chào")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestThreadIDIsPathEscaped(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history/a%2Fb/rename", r.URL.EscapedPath())
		io.WriteString(w, `{}`)
	}))

	require.NoError(t, c.RenameConversation(context.Background(), "a/b", "x"))
}
