package anthropic

import (
	"encoding/json"
	"strings"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/streamdecode"
)

// accumulator holds the in-flight tool_use block being assembled across
// content_block_start/content_block_delta/content_block_stop events for one
// response.
type accumulator struct {
	toolID     string
	toolName   string
	inputBuf   strings.Builder
	inToolUse  bool
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

type sseMessageStart struct {
	Message struct {
		Usage struct {
			InputTokens int `json:"input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

type sseContentBlockStart struct {
	ContentBlock struct {
		Type string `json:"type"`
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"content_block"`
}

type sseContentBlockDelta struct {
	Delta struct {
		Type        string `json:"type"`
		Text        string `json:"text"`
		PartialJSON string `json:"partial_json"`
	} `json:"delta"`
}

type sseMessageDelta struct {
	Delta struct {
		StopReason string `json:"stop_reason"`
	} `json:"delta"`
	Usage struct {
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// handle dispatches one SSE record by its event type, emitting normalized
// events as appropriate.
func (a *accumulator) handle(ev streamdecode.SSEEvent, onEvent func(message.NormalizedEvent)) {
	switch ev.Type {
	case "message_start":
		var payload sseMessageStart
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			return // malformed line: dropped, non-fatal
		}
		onEvent(message.UsageUpdateEvent(message.Usage{InputTokens: uint64(payload.Message.Usage.InputTokens)}))

	case "content_block_start":
		var payload sseContentBlockStart
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			return
		}
		if payload.ContentBlock.Type == "tool_use" {
			a.inToolUse = true
			a.toolID = payload.ContentBlock.ID
			a.toolName = payload.ContentBlock.Name
			a.inputBuf.Reset()
		}

	case "content_block_delta":
		var payload sseContentBlockDelta
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			return
		}
		switch payload.Delta.Type {
		case "text_delta":
			onEvent(message.TextDeltaEvent(payload.Delta.Text))
		case "input_json_delta":
			if a.inToolUse {
				a.inputBuf.WriteString(payload.Delta.PartialJSON)
			}
		}

	case "content_block_stop":
		if a.inToolUse {
			input := a.inputBuf.String()
			onEvent(message.ToolUseEvent(message.NewToolUseBlock(a.toolID, a.toolName, input)))
			a.inToolUse = false
			a.toolID = ""
			a.toolName = ""
			a.inputBuf.Reset()
		}

	case "message_delta":
		var payload sseMessageDelta
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			return
		}
		if payload.Usage.OutputTokens > 0 {
			onEvent(message.UsageUpdateEvent(message.Usage{OutputTokens: uint64(payload.Usage.OutputTokens)}))
		}
		onEvent(message.MessageEndEvent(message.ParseStopReason(payload.Delta.StopReason)))

	default:
		// ping, message_stop, and any other event type carry nothing this
		// adapter needs; message_stop is redundant with message_delta's
		// emitted message_end.
	}
}
