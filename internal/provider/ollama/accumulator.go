package ollama

import (
	"encoding/json"

	"github.com/openclaude/openclaude/internal/message"
)

// accumulatedCall is one tool call accumulated across intermediate
// (done:false) chunks. Ollama's tool_calls arrive whole within a chunk
// (unlike OpenAI's per-token fragments), but may be spread across several
// chunks before done:true arrives, so calls are still collected into an
// ordered slice and only emitted once done:true is seen.
type accumulatedCall struct {
	name string
	args string
}

type accumulator struct {
	calls []accumulatedCall
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

func (a *accumulator) apply(chunk chatChunk, onEvent func(message.NormalizedEvent)) {
	if chunk.Message.Content != "" {
		onEvent(message.TextDeltaEvent(chunk.Message.Content))
	}
	for _, tc := range chunk.Message.ToolCalls {
		args := string(tc.Function.Arguments)
		if args == "" {
			args = "{}"
		}
		a.calls = append(a.calls, accumulatedCall{name: tc.Function.Name, args: args})
	}

	if !chunk.Done {
		return
	}

	for _, c := range a.calls {
		onEvent(message.ToolUseEvent(message.NewToolUseBlock(nextToolCallID(), c.name, normalizeArgs(c.args))))
	}

	if chunk.PromptEvalCount > 0 || chunk.EvalCount > 0 {
		onEvent(message.UsageUpdateEvent(message.Usage{
			InputTokens:  uint64(chunk.PromptEvalCount),
			OutputTokens: uint64(chunk.EvalCount),
		}))
	}

	reason := message.StopEndTurn
	if len(a.calls) > 0 {
		reason = message.StopToolUse
	}
	onEvent(message.MessageEndEvent(reason))
}

// normalizeArgs re-serializes arguments that arrived as a JSON object
// (Ollama sends tool_calls[].function.arguments as an object, not a string)
// into the opaque JSON-string form the rest of the core expects.
func normalizeArgs(raw string) string {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	out, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return string(out)
}
