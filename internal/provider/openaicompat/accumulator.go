package openaicompat

import (
	"strings"

	"github.com/openclaude/openclaude/internal/message"
)

// toolCallState is one in-flight tool call's accumulated fragments, indexed
// by the chunk's index field, emitted as a NormalizedEvent once complete.
type toolCallState struct {
	id       strings.Builder
	name     strings.Builder
	argsBuf  strings.Builder
}

// accumulator tolerates out-of-order index growth: tool call fragments for
// index 2 may arrive before index 0 is seen, so state is a growing map keyed
// by index with a separate order slice preserving first-seen order.
type accumulator struct {
	toolStates map[int]*toolCallState
	toolOrder  []int
	flushed    bool
}

func newAccumulator() *accumulator {
	return &accumulator{toolStates: make(map[int]*toolCallState)}
}

func (a *accumulator) apply(chunk streamChunk, onEvent func(message.NormalizedEvent)) {
	if chunk.Usage != nil {
		onEvent(message.UsageUpdateEvent(message.Usage{
			InputTokens:  uint64(chunk.Usage.PromptTokens),
			OutputTokens: uint64(chunk.Usage.CompletionTokens),
		}))
	}

	for _, choice := range chunk.Choices {
		if choice.Index != 0 {
			continue
		}
		if choice.Delta.Content != "" {
			onEvent(message.TextDeltaEvent(choice.Delta.Content))
		}
		for _, td := range choice.Delta.ToolCalls {
			state, ok := a.toolStates[td.Index]
			if !ok {
				state = &toolCallState{}
				a.toolStates[td.Index] = state
				a.toolOrder = append(a.toolOrder, td.Index)
			}
			if td.ID != "" {
				state.id.WriteString(td.ID)
			}
			if td.Function.Name != "" {
				state.name.WriteString(td.Function.Name)
			}
			if td.Function.Arguments != "" {
				state.argsBuf.WriteString(td.Function.Arguments)
			}
		}

		switch choice.FinishReason {
		case "tool_calls":
			a.flush(onEvent, message.StopToolUse)
		case "stop":
			a.flush(onEvent, message.StopEndTurn)
		case "length":
			a.flush(onEvent, message.StopMaxTokens)
		}
	}
}

// flush emits every accumulated tool_use in first-seen order followed by
// message_end, and is idempotent: a second call (e.g. from a later [DONE]
// sentinel after finish_reason already flushed) does nothing.
func (a *accumulator) flush(onEvent func(message.NormalizedEvent), reason message.StopReason) {
	if a.flushed {
		return
	}
	a.flushed = true
	for _, idx := range a.toolOrder {
		state := a.toolStates[idx]
		onEvent(message.ToolUseEvent(message.NewToolUseBlock(state.id.String(), state.name.String(), state.argsBuf.String())))
	}
	onEvent(message.MessageEndEvent(reason))
}
