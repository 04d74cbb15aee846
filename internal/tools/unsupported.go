package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openclaude/openclaude/internal/message"
)

// unsupportedTool stubs out a tool name that would otherwise require a full
// subsystem (task delegation, web fetch, notebook editing, todos, and the
// rest) that this agent core doesn't implement. The name stays discoverable
// under the full profile; any call fails loudly with guidance rather than
// silently vanishing.
type unsupportedTool struct {
	name        string
	description string
	reason      string
}

func newUnsupportedTool(name, description, reason string) *unsupportedTool {
	return &unsupportedTool{name: name, description: description, reason: reason}
}

func (t *unsupportedTool) Name() string        { return t.name }
func (t *unsupportedTool) Description() string { return t.description }

func (t *unsupportedTool) Schema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

func (t *unsupportedTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	return message.ToolResult{Content: fmt.Sprintf("%s is not available: %s", t.name, t.reason), IsError: true}, nil
}

// UnsupportedTools returns stubs for the non-core tool set, for
// registration under the full profile only.
func UnsupportedTools() []Tool {
	return []Tool{
		newUnsupportedTool("task", "Delegate a sub-task to a nested agent.", "task delegation is outside this agent core's scope"),
		newUnsupportedTool("task_output", "Fetch output from a delegated task.", "task delegation is outside this agent core's scope"),
		newUnsupportedTool("notebook_edit", "Edit a Jupyter notebook cell.", "notebook editing is outside this agent core's scope"),
		newUnsupportedTool("web_fetch", "Fetch and summarize a URL.", "network fetch tools are outside this agent core's scope"),
		newUnsupportedTool("web_search", "Search the web.", "network search tools are outside this agent core's scope"),
		newUnsupportedTool("todo_write", "Track a structured todo list.", "todo tracking is outside this agent core's scope"),
		newUnsupportedTool("ask_user_question", "Prompt the user interactively.", "interactive prompting belongs to the REPL shell, not the agent core"),
		newUnsupportedTool("skill", "Invoke a packaged skill.", "skill invocation is outside this agent core's scope"),
		newUnsupportedTool("enter_plan_mode", "Enter a read-only planning mode.", "plan mode belongs to the REPL shell, not the agent core"),
		newUnsupportedTool("exit_plan_mode", "Exit planning mode.", "plan mode belongs to the REPL shell, not the agent core"),
		newUnsupportedTool("task_stop", "Stop a running delegated task.", "task delegation is outside this agent core's scope"),
	}
}

// DefaultTools returns the core six plus the listdir supplement plus the
// unsupported-stub set, in a stable order.
func DefaultTools(gate ShellGate) []Tool {
	tools := []Tool{
		&ShellTool{Gate: gate},
		&ReadTool{},
		&WriteTool{},
		&EditTool{},
		&GlobTool{},
		&GrepTool{},
		&ListDirTool{},
	}
	tools = append(tools, UnsupportedTools()...)
	return tools
}
