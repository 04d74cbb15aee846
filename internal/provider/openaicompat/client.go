// Package openaicompat implements the OpenAI-compatible chat-completions
// SSE adapter: request/response plumbing and HTTP-status error mapping
// (via provider.MapHTTPStatus) built on the provider-agnostic message model
// and the shared streamdecode.SSEDecoder.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/provider"
	"github.com/openclaude/openclaude/internal/streamdecode"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client is the OpenAI-compatible adapter.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient constructs an OpenAI-compatible adapter. idleTimeout bounds the
// gap between successive reads on the response body, not the lifetime of
// the request.
func NewClient(baseURL, apiKey string, idleTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: provider.NewHTTPClient(idleTimeout),
	}
}

func (c *Client) completionsURL() string {
	if strings.HasSuffix(c.BaseURL, "/chat/completions") {
		return c.BaseURL
	}
	return c.BaseURL + "/chat/completions"
}

// StreamChat implements provider.Adapter.
func (c *Client) StreamChat(ctx context.Context, req message.ChatRequest, onEvent func(message.NormalizedEvent)) error {
	body, err := buildRequestBody(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL(), bytes.NewReader(body))
	if err != nil {
		return provider.MapNetError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return provider.MapNetError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return provider.MapHTTPStatus(resp.StatusCode, string(errBody))
	}

	return consumeStream(resp.Body, onEvent)
}

func consumeStream(r io.Reader, onEvent func(message.NormalizedEvent)) error {
	dec := streamdecode.NewSSEDecoder()
	acc := newAccumulator()
	buf := make([]byte, 4096)

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			for _, ev := range dec.Feed(buf[:n]) {
				if strings.TrimSpace(ev.Data) == "[DONE]" {
					acc.flush(onEvent, message.StopEndTurn)
					continue
				}
				var chunk streamChunk
				if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
					continue // malformed line: dropped, non-fatal
				}
				acc.apply(chunk, onEvent)
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return provider.MapNetError(readErr)
		}
	}
}
