// Package agentloop implements the agent loop: building requests, invoking
// the provider with a narrow retry band, consuming normalized events,
// dispatching tool calls through the registry, and persisting the session
// on normal termination. It drives off the provider-agnostic NormalizedEvent
// stream so any of the three adapters can sit underneath it.
package agentloop

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openclaude/openclaude/internal/agentlog"
	"github.com/openclaude/openclaude/internal/coreerr"
	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/provider"
	"github.com/openclaude/openclaude/internal/session"
	"github.com/openclaude/openclaude/internal/tools"
)

const maxIterations = 20

const maxRetries = 2

// retryBackoff returns the wait before retry attempt n (1-indexed): 1s then
// 2s, a fixed two-step schedule.
func retryBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

// StatusSink receives the user-visible and diagnostic output the loop
// produces while running: streamed text, tool-call previews, and tool
// results. A nil sink is valid and discards everything.
type StatusSink interface {
	OnTextDelta(text string)
	OnToolCallStarted(name string, inputJSON string)
	OnToolResultPreview(name string, preview string, isError bool)
}

// ModelPricing is a per-model USD-per-million-token rate pair used to
// estimate a turn's cost. A nil or empty Pricing table disables cost
// tracking and Result.CostUSD stays zero.
type ModelPricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// Loop holds the collaborators a single agent-loop invocation needs.
type Loop struct {
	Provider     provider.Adapter
	Tools        *tools.Runner
	ToolContext  tools.ToolContext
	SystemPrompt string
	Model        string
	MaxTokens    int
	Temperature  *float64
	Sink         StatusSink
	Pricing      map[string]ModelPricing
}

// Result is what a terminating Run call returns.
type Result struct {
	FinalText      string
	Usage          message.Usage
	IterationsUsed int
	ToolCallsCount int
	CostUSD        float64
}

func (l *Loop) sink() StatusSink {
	if l.Sink != nil {
		return l.Sink
	}
	return noopSink{}
}

// Run drives the loop for one top-level user turn against sess, which
// already has the triggering user message appended. It returns once the
// model produces a non-tool_use stop reason (and persists the session) or
// the iteration cap is reached (in which case the session is left dirty and
// unsaved, so the caller can decide whether to retry or discard the turn).
func (l *Loop) Run(ctx context.Context, sess *session.Session) (*Result, error) {
	result := &Result{}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		result.IterationsUsed = iteration

		toolsEnabled := len(l.Tools.Names()) > 0
		req := l.buildRequest(sess.Messages(), toolsEnabled)

		events, err := l.invokeWithRetry(ctx, req)
		if err != nil {
			return nil, err
		}

		turn := consumeEvents(events)
		result.Usage.Add(turn.usage)
		result.FinalText = turn.text

		var blocks []message.ContentBlock
		if turn.text != "" {
			blocks = append(blocks, message.NewTextBlock(turn.text))
		}
		blocks = append(blocks, turn.toolUses...)
		sess.AddAssistantMessage(blocks)

		if turn.stopReason != message.StopToolUse || len(turn.toolUses) == 0 {
			if err := sess.Save(); err != nil {
				return nil, err
			}
			result.CostUSD = l.estimateCost(result.Usage)
			return result, nil
		}

		for _, tu := range turn.toolUses {
			result.ToolCallsCount++
			l.sink().OnToolCallStarted(tu.Name, tu.Input)
			toolResult, toolErr := l.Tools.Execute(ctx, tu.Name, json.RawMessage(tu.Input), l.ToolContext)
			if toolErr != nil {
				toolResult = message.ToolResult{Content: toolErr.Error(), IsError: true}
			}
			l.sink().OnToolResultPreview(tu.Name, previewOf(toolResult.Content), toolResult.IsError)
			sess.AddToolResultMessage(tu.ID, toolResult.Content, toolResult.IsError)
		}
	}

	return nil, coreerr.New(coreerr.MaxIterations, fmt.Sprintf("exceeded %d iterations without termination", maxIterations))
}

func previewOf(content string) string {
	const max = 200
	if len(content) <= max {
		return content
	}
	return content[:max]
}

func (l *Loop) buildRequest(msgs []message.Message, toolsEnabled bool) message.ChatRequest {
	var defs []message.ToolDefinition
	if toolsEnabled {
		defs = l.Tools.Definitions()
	}
	return message.ChatRequest{
		Messages:     msgs,
		SystemPrompt: l.SystemPrompt,
		Tools:        defs,
		Model:        l.Model,
		MaxTokens:    l.MaxTokens,
		Temperature:  l.Temperature,
	}
}

// invokeWithRetry calls provider.StreamChat, retrying up to maxRetries times
// on errors classified retryable (rate limit, server error, connection
// refused, connection reset), waiting retryBackoff(attempt) between
// attempts. All other errors fail immediately.
func (l *Loop) invokeWithRetry(ctx context.Context, req message.ChatRequest) ([]message.NormalizedEvent, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var events []message.NormalizedEvent
		err := l.Provider.StreamChat(ctx, req, func(ev message.NormalizedEvent) {
			if ev.Kind == message.EventTextDelta {
				l.sink().OnTextDelta(ev.TextDelta)
			}
			events = append(events, ev)
		})
		if err == nil {
			return events, nil
		}

		kind := coreerr.KindOf(err)
		retryable := coreerr.Retryable(kind) || coreerr.RetryableTransport(err)
		if !retryable || attempt == maxRetries {
			return nil, err
		}

		lastErr = err
		wait := retryBackoff(attempt + 1)
		agentlog.RetryWarning(attempt+1, wait, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

type turnAccumulator struct {
	text       string
	toolUses   []message.ContentBlock
	stopReason message.StopReason
	usage      message.Usage
}

func consumeEvents(events []message.NormalizedEvent) turnAccumulator {
	var t turnAccumulator
	for _, ev := range events {
		switch ev.Kind {
		case message.EventTextDelta:
			t.text += ev.TextDelta
		case message.EventToolUse:
			t.toolUses = append(t.toolUses, ev.ToolUse)
		case message.EventUsageUpdate:
			t.usage.Add(ev.Usage)
		case message.EventMessageEnd:
			t.stopReason = ev.StopReason
		}
	}
	return t
}

func (l *Loop) estimateCost(u message.Usage) float64 {
	pricing, ok := l.Pricing[l.Model]
	if !ok {
		return 0
	}
	return float64(u.InputTokens)/1_000_000*pricing.InputPer1M + float64(u.OutputTokens)/1_000_000*pricing.OutputPer1M
}

type noopSink struct{}

func (noopSink) OnTextDelta(string)                      {}
func (noopSink) OnToolCallStarted(string, string)         {}
func (noopSink) OnToolResultPreview(string, string, bool) {}
