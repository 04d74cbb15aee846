// Package ollama implements the Ollama NDJSON chat adapter: incremental
// NDJSON line reading plus accumulation of tool calls spread across
// intermediate chunks into a single emission at done:true.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/provider"
	"github.com/openclaude/openclaude/internal/streamdecode"
)

const defaultBaseURL = "http://localhost:11434"

// Client is the Ollama adapter.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient constructs an Ollama adapter. idleTimeout bounds the gap
// between successive reads on the response body, not the lifetime of the
// request, since local models can pause between deltas far longer than a
// hosted API would.
func NewClient(baseURL string, idleTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    resolveChatURL(baseURL),
		HTTPClient: provider.NewHTTPClient(idleTimeout),
	}
}

// resolveChatURL normalizes a configured base URL into the chat endpoint:
// trim trailing slashes, strip a trailing /v1 suffix, append /api/chat.
func resolveChatURL(base string) string {
	trimmed := strings.TrimRight(base, "/")
	trimmed = strings.TrimSuffix(trimmed, "/v1")
	return trimmed + "/api/chat"
}

// idCounter gives the synthesized tool-call id a process-wide monotonic
// component, so two calls synthesized within the same millisecond still
// get distinct ids.
var idCounter uint64

func nextToolCallID() string {
	n := atomic.AddUint64(&idCounter, 1)
	return "ollama_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + strconv.FormatUint(n, 10)
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
	dec := streamdecode.NewNDJSONDecoder()
	acc := newAccumulator()
	buf := make([]byte, 4096)

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			for _, line := range dec.Feed(buf[:n]) {
				var chunk chatChunk
				if err := json.Unmarshal([]byte(line), &chunk); err != nil {
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
