package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func TestUnsupportedToolAlwaysFailsWithReason(t *testing.T) {
	tool := newUnsupportedTool("task", "Delegate a sub-task.", "task delegation is outside this agent core's scope")
	result, err := tool.Run(context.Background(), json.RawMessage(`{}`), ToolContext{})
	testutil.RequireNoError(t, err, "unsupported tools fail via ToolResult, not a Go error")
	testutil.RequireTrue(t, result.IsError, "an unsupported tool call is always an error result")
	testutil.RequireStringContains(t, result.Content, "task delegation is outside this agent core's scope", "reason surfaces in the result")
}

func TestUnsupportedToolsCoversExpectedNames(t *testing.T) {
	names := map[string]bool{}
	for _, tool := range UnsupportedTools() {
		names[tool.Name()] = true
	}
	for _, want := range []string{"task", "web_fetch", "web_search", "todo_write", "skill"} {
		testutil.RequireTrue(t, names[want], "unsupported stub set should include "+want)
	}
}

func TestDefaultToolsRegistersCoreSixPlusListdirPlusStubs(t *testing.T) {
	tools := DefaultTools(ShellGate{Security: ExecFull})
	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name()] = true
	}
	for _, want := range []string{"shell", "read", "write", "edit", "glob", "grep", "listdir", "task"} {
		testutil.RequireTrue(t, names[want], "default tool set should include "+want)
	}
}
