package ollama

import (
	"encoding/json"
	"testing"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/testutil"
)

func TestAccumulatorTextOnly(t *testing.T) {
	a := newAccumulator()
	var events []message.NormalizedEvent
	emit := func(ev message.NormalizedEvent) { events = append(events, ev) }

	var chunk chatChunk
	chunk.Message.Content = "Hel"
	a.apply(chunk, emit)
	testutil.RequireEqual(t, len(events), 1, "a content fragment should emit a text delta")
	testutil.RequireEqual(t, events[0].TextDelta, "Hel", "text content")
}

func TestAccumulatorToolCallsSpreadAcrossChunksEmitOnDone(t *testing.T) {
	a := newAccumulator()
	var events []message.NormalizedEvent
	emit := func(ev message.NormalizedEvent) { events = append(events, ev) }

	var chunk1 chatChunk
	testutil.RequireNoError(t, json.Unmarshal(
		[]byte(`{"message":{"tool_calls":[{"function":{"name":"read_file","arguments":{"path":"a.go"}}}]}}`),
		&chunk1), "decode fixture chunk")
	a.apply(chunk1, emit)
	testutil.RequireEqual(t, len(events), 0, "tool calls in an intermediate chunk are not emitted until done:true")

	done := chatChunk{Done: true, PromptEvalCount: 10, EvalCount: 4}
	a.apply(done, emit)

	testutil.RequireEqual(t, len(events), 3, "tool_use, usage, and message_end")
	testutil.RequireEqual(t, events[0].Kind, message.EventToolUse, "first emitted event is the tool use")
	testutil.RequireEqual(t, events[0].ToolUse.Name, "read_file", "tool name")
	testutil.RequireEqual(t, events[0].ToolUse.Input, `{"path":"a.go"}`, "argument object re-serialized to compact JSON")
	testutil.RequireEqual(t, events[2].StopReason, message.StopToolUse, "presence of tool calls forces a tool_use stop reason")
}

func TestAccumulatorNoToolCallsEndsTurnNormally(t *testing.T) {
	a := newAccumulator()
	var events []message.NormalizedEvent
	a.apply(chatChunk{Done: true}, func(ev message.NormalizedEvent) { events = append(events, ev) })
	testutil.RequireEqual(t, len(events), 1, "only message_end when there's no usage and no tool calls")
	testutil.RequireEqual(t, events[0].StopReason, message.StopEndTurn, "no tool calls means a normal end_turn")
}

func TestNormalizeArgsCompactsWhitespace(t *testing.T) {
	got := normalizeArgs(`{ "a" : 1 , "b" : [1,2] }`)
	testutil.RequireEqual(t, got, `{"a":1,"b":[1,2]}`, "object arguments are re-serialized compactly")
}

func TestNormalizeArgsPassesThroughInvalidJSON(t *testing.T) {
	got := normalizeArgs(`not json`)
	testutil.RequireEqual(t, got, "not json", "unparseable input is returned unchanged rather than dropped")
}
