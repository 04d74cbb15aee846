package openaicompat

import (
	"encoding/json"

	"github.com/openclaude/openclaude/internal/message"
)

func buildRequestBody(req message.ChatRequest) ([]byte, error) {
	msgs := toOpenAIMessages(req)

	var tools []wireTool
	for _, td := range req.Tools {
		tools = append(tools, wireTool{
			Type: "function",
			Function: wireToolFunc{
				Name:        td.Name,
				Description: td.Description,
				Parameters:  json.RawMessage(td.InputSchemaJSON),
			},
		})
	}

	body := requestBody{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Stream:      true,
		Temperature: req.Temperature,
		Messages:    msgs,
		Tools:       tools,
	}
	return json.Marshal(body)
}

// toOpenAIMessages translates normalized messages into OpenAI's wire shape: a system
// prompt becomes a leading system message; a user message containing
// tool_result blocks expands into one top-level "tool" message per result;
// an assistant message with tool_use blocks carries content (text, or null)
// plus a tool_calls list whose function.arguments is the tool_use's raw
// input string.
func toOpenAIMessages(req message.ChatRequest) []wireMessage {
	var out []wireMessage
	if req.SystemPrompt != "" {
		sys := req.SystemPrompt
		out = append(out, wireMessage{Role: "system", Content: &sys})
	}

	for _, m := range req.Messages {
		switch m.Role {
		case message.RoleUser:
			var toolResults []message.ContentBlock
			var text string
			hasText := false
			for _, b := range m.Content {
				if b.Type == message.BlockToolResult {
					toolResults = append(toolResults, b)
				} else if b.Type == message.BlockText {
					text = b.Text
					hasText = true
				}
			}
			if len(toolResults) > 0 {
				for _, tr := range toolResults {
					content := tr.Content
					out = append(out, wireMessage{Role: "tool", Content: &content, ToolCallID: tr.ToolUseID})
				}
				continue
			}
			if hasText {
				out = append(out, wireMessage{Role: "user", Content: &text})
			}

		case message.RoleAssistant:
			var toolCalls []wireToolCall
			var text string
			hasText := false
			for _, b := range m.Content {
				switch b.Type {
				case message.BlockText:
					text = b.Text
					hasText = true
				case message.BlockToolUse:
					input := b.Input
					if input == "" {
						input = "{}"
					}
					toolCalls = append(toolCalls, wireToolCall{
						ID:   b.ID,
						Type: "function",
						Function: wireToolCallFunction{
							Name:      b.Name,
							Arguments: input,
						},
					})
				}
			}
			wm := wireMessage{Role: "assistant", ToolCalls: toolCalls}
			if hasText {
				wm.Content = &text
			}
			out = append(out, wm)

		case message.RoleSystem:
			if txt, ok := m.FirstText(); ok {
				out = append(out, wireMessage{Role: "system", Content: &txt})
			}
		}
	}
	return out
}
