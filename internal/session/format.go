package session

import (
	"encoding/json"

	"github.com/openclaude/openclaude/internal/message"
)

// wireMessage is the session-file schema:
// {"role":"user"|"assistant"|"system","content":[ContentBlock,...] | "text"}
type wireMessage struct {
	Role    message.Role    `json:"role"`
	Content json.RawMessage `json:"content"`
}

// marshalJSONLine renders one message as a single JSONL line. A message
// consisting of exactly one text block is written in shorthand string form;
// anything else is written as a content-block array. Unknown/extra fields
// are never emitted; the read side ignores unknown fields, so the write
// side stays minimal.
func marshalJSONLine(m message.Message) ([]byte, error) {
	var content json.RawMessage
	if len(m.Content) == 1 && m.Content[0].Type == message.BlockText {
		raw, err := json.Marshal(m.Content[0].Text)
		if err != nil {
			return nil, err
		}
		content = raw
	} else {
		blocks := make([]json.RawMessage, 0, len(m.Content))
		for _, b := range m.Content {
			raw, err := message.MarshalBlockJSON(b)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, raw)
		}
		raw, err := json.Marshal(blocks)
		if err != nil {
			return nil, err
		}
		content = raw
	}
	return json.Marshal(wireMessage{Role: m.Role, Content: content})
}

// parseJSONLine parses one session-journal line into a Message. It returns
// ok=false (never an error) for a malformed line, since a malformed line is
// skipped rather than treated as fatal.
func parseJSONLine(line string) (message.Message, bool) {
	var wm wireMessage
	if err := json.Unmarshal([]byte(line), &wm); err != nil {
		return message.Message{}, false
	}
	if wm.Role != message.RoleUser && wm.Role != message.RoleAssistant && wm.Role != message.RoleSystem {
		return message.Message{}, false
	}

	// Shorthand: content is a bare JSON string, treated as one text block.
	var shorthand string
	if err := json.Unmarshal(wm.Content, &shorthand); err == nil {
		return message.Message{Role: wm.Role, Content: []message.ContentBlock{message.NewTextBlock(shorthand)}}, true
	}

	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(wm.Content, &rawBlocks); err != nil {
		return message.Message{}, false
	}
	blocks := make([]message.ContentBlock, 0, len(rawBlocks))
	for _, raw := range rawBlocks {
		b, err := message.UnmarshalBlockJSON(raw)
		if err != nil {
			return message.Message{}, false
		}
		blocks = append(blocks, b)
	}
	return message.Message{Role: wm.Role, Content: blocks}, true
}
