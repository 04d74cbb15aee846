// Package anthropic implements the Anthropic Messages-API SSE adapter:
// dispatch over the message_start/content_block_start/content_block_delta/
// content_block_stop/message_delta/message_stop event vocabulary into
// NormalizedEvents.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/provider"
	"github.com/openclaude/openclaude/internal/streamdecode"
)

const defaultBaseURL = "https://api.anthropic.com/v1/messages"

// Client is the Anthropic adapter.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient constructs an Anthropic adapter. An empty baseURL uses the
// default Messages API endpoint. idleTimeout bounds the gap between
// successive reads on the response body, not the lifetime of the request.
func NewClient(baseURL, apiKey string, idleTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: provider.NewHTTPClient(idleTimeout),
	}
}

// StreamChat implements provider.Adapter.
func (c *Client) StreamChat(ctx context.Context, req message.ChatRequest, onEvent func(message.NormalizedEvent)) error {
	body, err := buildRequestBody(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return provider.MapNetError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
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
				acc.handle(ev, onEvent)
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				// A closed stream is treated as a clean end; any events
				// already delivered are kept.
				return nil
			}
			return provider.MapNetError(readErr)
		}
	}
}

func buildRequestBody(req message.ChatRequest) ([]byte, error) {
	type toolSpec struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		InputSchema json.RawMessage `json:"input_schema"`
	}
	type reqBody struct {
		Model       string          `json:"model"`
		MaxTokens   int             `json:"max_tokens"`
		Stream      bool            `json:"stream"`
		System      string          `json:"system,omitempty"`
		Temperature *float64        `json:"temperature,omitempty"`
		Messages    []anthropicMsg  `json:"messages"`
		Tools       []toolSpec      `json:"tools,omitempty"`
	}

	msgs, err := toAnthropicMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	var tools []toolSpec
	for _, td := range req.Tools {
		tools = append(tools, toolSpec{
			Name:        td.Name,
			Description: td.Description,
			InputSchema: json.RawMessage(td.InputSchemaJSON),
		})
	}

	body := reqBody{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Stream:      true,
		System:      req.SystemPrompt,
		Temperature: req.Temperature,
		Messages:    msgs,
		Tools:       tools,
	}
	return json.Marshal(body)
}
