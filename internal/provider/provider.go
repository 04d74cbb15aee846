// Package provider defines the common adapter contract every provider
// (Anthropic, OpenAI-compatible, Ollama) implements, plus the shared HTTP
// status-code-to-error-kind mapping used by all three.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/openclaude/openclaude/internal/coreerr"
	"github.com/openclaude/openclaude/internal/message"
)

// Adapter is the contract every provider satisfies: stream_chat(request) ->
// stream of NormalizedEvent, delivered via a callback since Go has no
// first-class generator. Exactly one EventMessageEnd is delivered per call
// unless StreamChat returns a non-nil error.
type Adapter interface {
	StreamChat(ctx context.Context, req message.ChatRequest, onEvent func(message.NormalizedEvent)) error
}

// MapHTTPStatus maps an HTTP error response to a CoreError kind, shared by
// all three adapters: 401 -> auth, 402 -> billing, 413 -> context overflow,
// 429 -> rate limit, 400 -> invalid request, 5xx -> server error, other ->
// generic transport failure.
func MapHTTPStatus(status int, body string) error {
	switch status {
	case http.StatusUnauthorized:
		return coreerr.New(coreerr.Authentication, "authentication failed")
	case http.StatusPaymentRequired:
		return coreerr.New(coreerr.Billing, "payment required")
	case http.StatusRequestEntityTooLarge:
		return coreerr.New(coreerr.ContextOverflow, "request exceeds context window")
	case http.StatusTooManyRequests:
		return coreerr.New(coreerr.RateLimited, "rate limited")
	case http.StatusBadRequest:
		return coreerr.New(coreerr.InvalidRequest, truncatedBody(body))
	default:
		if status >= 500 {
			return coreerr.New(coreerr.ServerError, fmt.Sprintf("server error (status %d)", status))
		}
		return coreerr.New(coreerr.TransportFailure, fmt.Sprintf("unexpected status %d", status))
	}
}

func truncatedBody(body string) string {
	const max = 500
	if len(body) <= max {
		return body
	}
	return body[:max] + "...[truncated]"
}

// MapNetError classifies a transport-level Go error (read-deadline expiry,
// connection refused, connection reset, or generic) into a *coreerr.CoreError,
// so the agent loop's retry band can recognize the two retryable connection
// failures and callers can distinguish a genuine read stall from those.
func MapNetError(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return coreerr.New(coreerr.Timeout, "no data received from the stream within the read timeout")
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return coreerr.New(coreerr.TransportFailure, coreerr.ConnRefused)
	case strings.Contains(msg, "connection reset"), strings.Contains(msg, "broken pipe"), strings.Contains(msg, "EOF"):
		return coreerr.New(coreerr.TransportFailure, coreerr.ConnReset)
	default:
		return coreerr.Wrap(coreerr.TransportFailure, "transport failure", err)
	}
}
