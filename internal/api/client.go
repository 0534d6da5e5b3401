// Package api is the HTTP client for the remote chat service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/zhubert/threadchat/internal/errors"
	"github.com/zhubert/threadchat/internal/logger"
)

const (
	// maxAudioBytes caps a /speak payload.
	maxAudioBytes = 32 << 20
	// maxErrorBody is how much of a failed response body is logged.
	maxErrorBody = 512
)

// Client talks to the chat service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time // cache-bust source, overridden in tests
}

var _ Service = (*Client)(nil)

// NewClient creates a client for baseURL whose requests time out after timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, baseURL)
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(client *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: client,
		baseURL:    baseURL,
		now:        time.Now,
	}
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListConversations fetches every conversation, most recent first.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	const op = pkgerrors.Op("api.ListConversations")

	var convos []Conversation
	if err := c.doJSON(ctx, op, http.MethodGet, "/history", true, nil, &convos); err != nil {
		return nil, err
	}
	if convos == nil {
		convos = []Conversation{}
	}
	return convos, nil
}

type historyResponse struct {
	Messages []Message `json:"messages"`
}

// GetMessages fetches the messages of one thread in arrival order.
func (c *Client) GetMessages(ctx context.Context, threadID string) ([]Message, error) {
	const op = pkgerrors.Op("api.GetMessages")
	if threadID == "" {
		return nil, pkgerrors.ThreadIDRequired(op)
	}

	var resp historyResponse
	if err := c.doJSON(ctx, op, http.MethodGet, "/history/"+url.PathEscape(threadID), true, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		resp.Messages = []Message{}
	}
	return resp.Messages, nil
}

// DeleteConversation deletes a thread on the server.
func (c *Client) DeleteConversation(ctx context.Context, threadID string) error {
	const op = pkgerrors.Op("api.DeleteConversation")
	if threadID == "" {
		return pkgerrors.ThreadIDRequired(op)
	}
	return c.doJSON(ctx, op, http.MethodDelete, "/history/"+url.PathEscape(threadID), false, nil, nil)
}

type renameRequest struct {
	NewTitle string `json:"new_title"`
}

// RenameConversation sets a thread's title.
func (c *Client) RenameConversation(ctx context.Context, threadID, newTitle string) error {
	const op = pkgerrors.Op("api.RenameConversation")
	if threadID == "" {
		return pkgerrors.ThreadIDRequired(op)
	}
	path := "/history/" + url.PathEscape(threadID) + "/rename"
	return c.doJSON(ctx, op, http.MethodPut, path, true, renameRequest{NewTitle: newTitle}, nil)
}

type chatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id"`
}

// Submit posts a user message to a thread. An application-level error payload
// is returned in the reply, not as an error; only transport, status and decode
// failures produce an error.
func (c *Client) Submit(ctx context.Context, message, threadID string) (*ChatReply, error) {
	const op = pkgerrors.Op("api.Submit")
	if threadID == "" {
		return nil, pkgerrors.ThreadIDRequired(op)
	}

	var reply ChatReply
	if err := c.doJSON(ctx, op, http.MethodPost, "/chat", true, chatRequest{Message: message, ThreadID: threadID}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

type speakRequest struct {
	Text string `json:"text"`
}

// Speak synthesizes text and returns the raw audio bytes.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	const op = pkgerrors.Op("api.Speak")

	resp, err := c.do(ctx, op, http.MethodPost, "/speak", false, speakRequest{Text: text})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, pkgerrors.RequestFailed(op, err)
	}
	return audio, nil
}

// doJSON issues a request and decodes a JSON body into out (skipped when out is nil).
func (c *Client) doJSON(ctx context.Context, op pkgerrors.Op, method, path string, cacheBust bool, body, out interface{}) error {
	resp, err := c.do(ctx, op, method, path, cacheBust, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		// Acks carry nothing we use; drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.DecodeFailed(op, err)
	}
	return nil
}

// do sends the request and returns a response with a 2xx status. The caller
// closes the body.
func (c *Client) do(ctx context.Context, op pkgerrors.Op, method, path string, cacheBust bool, body interface{}) (*http.Response, error) {
	endpoint := c.baseURL + path
	if cacheBust {
		endpoint += "?_t=" + strconv.FormatInt(c.now().UnixMilli(), 10)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.E(op, pkgerrors.KindInvalid, "failed to encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, pkgerrors.E(op, pkgerrors.KindInvalid, "failed to create request", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logger.WithComponent("api").With("op", string(op), "requestID", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "path", path, "error", err)
		if isTimeout(err) {
			return nil, pkgerrors.RequestTimedOut(op, err)
		}
		return nil, pkgerrors.RequestFailed(op, err)
	}

	log.Debug("request done", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		log.Warn("unexpected status", "status", resp.StatusCode, "body", string(snippet))
		return nil, pkgerrors.UnexpectedStatus(op, resp.StatusCode)
	}
	return resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// String implements fmt.Stringer for log lines.
func (c *Client) String() string {
	return fmt.Sprintf("api.Client(%s)", c.baseURL)
}
