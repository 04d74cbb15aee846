// Package message defines the provider-agnostic data model the agent core
// operates on: roles, content blocks, messages, usage counters, the
// normalized event stream, and the wire shapes adapters build requests from.
package message

import "encoding/json"

// Role is one of the three message roles the core recognizes.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// StopReason is the closed set a provider's finish signal maps into.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopToolUse   StopReason = "tool_use"
	StopMaxTokens StopReason = "max_tokens"
)

// ParseStopReason maps a provider-specific finish string into the closed
// StopReason set; unknown values map to end_turn.
func ParseStopReason(s string) StopReason {
	switch s {
	case "tool_use", "tool_calls":
		return StopToolUse
	case "max_tokens", "length":
		return StopMaxTokens
	case "end_turn", "stop", "":
		return StopEndTurn
	default:
		return StopEndTurn
	}
}

// BlockType discriminates a ContentBlock's variant.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// ContentBlock is a closed tagged variant: text, tool_use, or tool_result.
// Exactly one of the type-specific field groups is meaningful, selected by
// Type. tool_use's Input is held as an opaque JSON string deliberately so
// adapters never need to re-parse tool arguments between hops.
type ContentBlock struct {
	Type BlockType

	// text
	Text string

	// tool_use
	ID    string
	Name  string
	Input string // raw JSON, e.g. `{"command":"ls"}`

	// tool_result
	ToolUseID string
	Content   string
	IsError   bool
}

func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

func NewToolUseBlock(id, name, inputJSON string) ContentBlock {
	if inputJSON == "" {
		inputJSON = "{}"
	}
	return ContentBlock{Type: BlockToolUse, ID: id, Name: name, Input: inputJSON}
}

func NewToolResultBlock(toolUseID, content string, isError bool) ContentBlock {
	return ContentBlock{Type: BlockToolResult, ToolUseID: toolUseID, Content: content, IsError: isError}
}

// Message is a role plus an ordered sequence of content blocks.
type Message struct {
	Role    Role
	Content []ContentBlock
}

func NewUserText(text string) Message {
	return Message{Role: RoleUser, Content: []ContentBlock{NewTextBlock(text)}}
}

func NewAssistant(blocks []ContentBlock) Message {
	return Message{Role: RoleAssistant, Content: blocks}
}

// FirstText returns the content of the first text block, if any.
func (m Message) FirstText() (string, bool) {
	for _, b := range m.Content {
		if b.Type == BlockText {
			return b.Text, true
		}
	}
	return "", false
}

// HasToolUse reports whether the message contains any tool_use blocks.
func (m Message) HasToolUse() bool {
	for _, b := range m.Content {
		if b.Type == BlockToolUse {
			return true
		}
	}
	return false
}

// ToolUseBlocks returns the ordered subset of tool_use blocks.
func (m Message) ToolUseBlocks() []ContentBlock {
	var out []ContentBlock
	for _, b := range m.Content {
		if b.Type == BlockToolUse {
			out = append(out, b)
		}
	}
	return out
}

// Usage is the unsigned per-turn token tally.
type Usage struct {
	InputTokens  uint64
	OutputTokens uint64
}

// Add accumulates u2's counters into u, building a running per-turn tally.
func (u *Usage) Add(u2 Usage) {
	u.InputTokens += u2.InputTokens
	u.OutputTokens += u2.OutputTokens
}

// EventKind discriminates a NormalizedEvent's variant.
type EventKind int

const (
	EventTextDelta EventKind = iota
	EventToolUse
	EventMessageEnd
	EventUsageUpdate
)

// NormalizedEvent is the adapter-agnostic unit every provider emits.
type NormalizedEvent struct {
	Kind EventKind

	TextDelta string

	ToolUse ContentBlock // Type == BlockToolUse

	StopReason StopReason

	Usage Usage
}

func TextDeltaEvent(text string) NormalizedEvent {
	return NormalizedEvent{Kind: EventTextDelta, TextDelta: text}
}

func ToolUseEvent(block ContentBlock) NormalizedEvent {
	return NormalizedEvent{Kind: EventToolUse, ToolUse: block}
}

func MessageEndEvent(reason StopReason) NormalizedEvent {
	return NormalizedEvent{Kind: EventMessageEnd, StopReason: reason}
}

func UsageUpdateEvent(u Usage) NormalizedEvent {
	return NormalizedEvent{Kind: EventUsageUpdate, Usage: u}
}

// ToolDefinition describes a tool's name, description, and pre-serialized
// JSON Schema to the model.
type ToolDefinition struct {
	Name            string
	Description     string
	InputSchemaJSON string
}

// ChatRequest is the provider-agnostic shape every adapter serializes into
// its own wire dialect.
type ChatRequest struct {
	Messages     []Message
	SystemPrompt string
	Tools        []ToolDefinition
	Model        string
	MaxTokens    int
	Temperature  *float64
}

// ToolResult is what a tool invocation hands back to the model.
type ToolResult struct {
	Content string
	IsError bool
}

// jsonContentBlock is the on-the-wire shape used by session persistence.
// The provider adapters serialize messages through their own wire types.
type jsonContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

// MarshalBlockJSON renders a ContentBlock into its wire shape.
func MarshalBlockJSON(b ContentBlock) ([]byte, error) {
	switch b.Type {
	case BlockText:
		return json.Marshal(jsonContentBlock{Type: "text", Text: b.Text})
	case BlockToolUse:
		input := b.Input
		if input == "" {
			input = "{}"
		}
		return json.Marshal(jsonContentBlock{
			Type:  "tool_use",
			ID:    b.ID,
			Name:  b.Name,
			Input: json.RawMessage(input),
		})
	case BlockToolResult:
		return json.Marshal(jsonContentBlock{
			Type:      "tool_result",
			ToolUseID: b.ToolUseID,
			Content:   b.Content,
			IsError:   b.IsError,
		})
	default:
		return nil, &json.UnsupportedTypeError{}
	}
}

// UnmarshalBlockJSON parses a single wire-shaped content block.
func UnmarshalBlockJSON(raw json.RawMessage) (ContentBlock, error) {
	var jb jsonContentBlock
	if err := json.Unmarshal(raw, &jb); err != nil {
		return ContentBlock{}, err
	}
	switch BlockType(jb.Type) {
	case BlockText:
		return NewTextBlock(jb.Text), nil
	case BlockToolUse:
		input := string(jb.Input)
		if input == "" {
			input = "{}"
		}
		return NewToolUseBlock(jb.ID, jb.Name, input), nil
	case BlockToolResult:
		return NewToolResultBlock(jb.ToolUseID, jb.Content, jb.IsError), nil
	default:
		return ContentBlock{}, &json.UnsupportedTypeError{}
	}
}
