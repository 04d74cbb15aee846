package ollama

import (
	"encoding/json"

	"github.com/openclaude/openclaude/internal/message"
)

const ollamaNumCtx = 65536

func buildRequestBody(req message.ChatRequest) ([]byte, error) {
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
		Model:    req.Model,
		Stream:   true,
		Messages: toOllamaMessages(req),
		Tools:    tools,
		Options: requestOptions{
			NumCtx:      ollamaNumCtx,
			NumPredict:  req.MaxTokens,
			Temperature: req.Temperature,
		},
	}
	return json.Marshal(body)
}

// toOllamaMessages translates normalized messages into Ollama's wire shape: assistant messages with
// tool calls carry a tool_calls array whose function.arguments is the raw
// JSON; user messages containing tool_result blocks expand one per result
// into role "tool" messages.
func toOllamaMessages(req message.ChatRequest) []wireMessage {
	var out []wireMessage
	if req.SystemPrompt != "" {
		out = append(out, wireMessage{Role: "system", Content: req.SystemPrompt})
	}

	for _, m := range req.Messages {
		switch m.Role {
		case message.RoleUser:
			var toolResults []message.ContentBlock
			var text string
			for _, b := range m.Content {
				if b.Type == message.BlockToolResult {
					toolResults = append(toolResults, b)
				} else if b.Type == message.BlockText {
					text = b.Text
				}
			}
			if len(toolResults) > 0 {
				for _, tr := range toolResults {
					out = append(out, wireMessage{Role: "tool", Content: tr.Content})
				}
				continue
			}
			out = append(out, wireMessage{Role: "user", Content: text})

		case message.RoleAssistant:
			var toolCalls []wireToolCall
			var text string
			for _, b := range m.Content {
				switch b.Type {
				case message.BlockText:
					text = b.Text
				case message.BlockToolUse:
					input := b.Input
					if input == "" {
						input = "{}"
					}
					toolCalls = append(toolCalls, wireToolCall{
						Function: wireToolCallFunc{Name: b.Name, Arguments: json.RawMessage(input)},
					})
				}
			}
			out = append(out, wireMessage{Role: "assistant", Content: text, ToolCalls: toolCalls})

		case message.RoleSystem:
			if txt, ok := m.FirstText(); ok {
				out = append(out, wireMessage{Role: "system", Content: txt})
			}
		}
	}
	return out
}
