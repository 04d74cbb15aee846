package anthropic

import (
	"encoding/json"

	"github.com/openclaude/openclaude/internal/message"
)

type anthropicBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

// anthropicMsg is serialized either as {"role":..,"content":"text"} (the
// single-text-block shorthand) or {"role":..,"content":[block,...]}.
type anthropicMsg struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// toAnthropicMessages serializes the provider-agnostic message list into
// Anthropic's dialect: a message with exactly one text block
// may use the shorthand string form; a tool_use block's input is inlined
// raw since the stored string is already valid JSON; a tool_result block
// carries type/tool_use_id/content/is_error.
func toAnthropicMessages(msgs []message.Message) ([]anthropicMsg, error) {
	out := make([]anthropicMsg, 0, len(msgs))
	for _, m := range msgs {
		role := string(m.Role)
		if role == "system" {
			continue // system is sent via the top-level "system" field
		}

		if len(m.Content) == 1 && m.Content[0].Type == message.BlockText {
			raw, err := json.Marshal(m.Content[0].Text)
			if err != nil {
				return nil, err
			}
			out = append(out, anthropicMsg{Role: role, Content: raw})
			continue
		}

		blocks := make([]anthropicBlock, 0, len(m.Content))
		for _, b := range m.Content {
			switch b.Type {
			case message.BlockText:
				blocks = append(blocks, anthropicBlock{Type: "text", Text: b.Text})
			case message.BlockToolUse:
				input := b.Input
				if input == "" {
					input = "{}"
				}
				blocks = append(blocks, anthropicBlock{
					Type:  "tool_use",
					ID:    b.ID,
					Name:  b.Name,
					Input: json.RawMessage(input),
				})
			case message.BlockToolResult:
				blocks = append(blocks, anthropicBlock{
					Type:      "tool_result",
					ToolUseID: b.ToolUseID,
					Content:   b.Content,
					IsError:   b.IsError,
				})
			}
		}
		raw, err := json.Marshal(blocks)
		if err != nil {
			return nil, err
		}
		out = append(out, anthropicMsg{Role: role, Content: raw})
	}
	return out, nil
}
