package ollama

import (
	"testing"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/testutil"
)

func TestToOllamaMessagesPrependsSystemPrompt(t *testing.T) {
	req := message.ChatRequest{SystemPrompt: "be brief", Messages: []message.Message{message.NewUserText("hi")}}
	out := toOllamaMessages(req)
	testutil.RequireEqual(t, len(out), 2, "system prompt plus one user message")
	testutil.RequireEqual(t, out[0].Role, "system", "system message comes first")
	testutil.RequireEqual(t, out[1].Content, "hi", "user message content")
}

func TestToOllamaMessagesToolResultBecomesToolRole(t *testing.T) {
	req := message.ChatRequest{Messages: []message.Message{{
		Role:    message.RoleUser,
		Content: []message.ContentBlock{message.NewToolResultBlock("call-1", "42", false)},
	}}}
	out := toOllamaMessages(req)
	testutil.RequireEqual(t, len(out), 1, "one tool-result message")
	testutil.RequireEqual(t, out[0].Role, "tool", "tool results map to the tool role")
	testutil.RequireEqual(t, out[0].Content, "42", "tool result content")
}

func TestToOllamaMessagesMultipleToolResultsExpandIndividually(t *testing.T) {
	req := message.ChatRequest{Messages: []message.Message{{
		Role: message.RoleUser,
		Content: []message.ContentBlock{
			message.NewToolResultBlock("call-1", "a", false),
			message.NewToolResultBlock("call-2", "b", true),
		},
	}}}
	out := toOllamaMessages(req)
	testutil.RequireEqual(t, len(out), 2, "each tool result becomes its own tool-role message")
}

func TestToOllamaMessagesAssistantToolCall(t *testing.T) {
	req := message.ChatRequest{Messages: []message.Message{
		message.NewAssistant([]message.ContentBlock{
			message.NewTextBlock("let me check"),
			message.NewToolUseBlock("call-1", "shell", `{"command":"ls"}`),
		}),
	}}
	out := toOllamaMessages(req)
	testutil.RequireEqual(t, len(out), 1, "one assistant message")
	testutil.RequireEqual(t, out[0].Content, "let me check", "assistant text kept")
	testutil.RequireEqual(t, len(out[0].ToolCalls), 1, "one tool call")
	testutil.RequireEqual(t, out[0].ToolCalls[0].Function.Name, "shell", "tool call name")
}

func TestBuildRequestBodySetsNumCtxAndPredict(t *testing.T) {
	req := message.ChatRequest{Model: "llama3", MaxTokens: 512, Messages: []message.Message{message.NewUserText("hi")}}
	raw, err := buildRequestBody(req)
	testutil.RequireNoError(t, err, "build")
	testutil.RequireStringContains(t, string(raw), `"num_ctx":65536`, "fixed context window option")
	testutil.RequireStringContains(t, string(raw), `"num_predict":512`, "max tokens maps to num_predict")
}
