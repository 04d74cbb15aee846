package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/testutil"
)

type fakeTool struct {
	name string
}

func (f *fakeTool) Name() string                    { return f.name }
func (f *fakeTool) Description() string              { return "fake" }
func (f *fakeTool) Schema() map[string]any           { return map[string]any{"type": "object"} }
func (f *fakeTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	return message.ToolResult{Content: f.name + " ran"}, nil
}

func TestNewRunnerDedupesByNameKeepingFirstSeen(t *testing.T) {
	first := &fakeTool{name: "dup"}
	second := &fakeTool{name: "dup"}
	r := NewRunner([]Tool{first, second, &fakeTool{name: "other"}})
	testutil.RequireEqual(t, len(r.Names()), 2, "duplicate name collapses to one entry")
	testutil.RequireEqual(t, r.Names()[0], "dup", "first-seen order preserved")
	testutil.RequireEqual(t, r.Names()[1], "other", "second distinct tool follows")
}

func TestRunnerDefinitionsMatchToolCount(t *testing.T) {
	r := NewRunner([]Tool{&fakeTool{name: "a"}, &fakeTool{name: "b"}})
	defs := r.Definitions()
	testutil.RequireEqual(t, len(defs), 2, "one definition per registered tool")
}

func TestRunnerExecuteRunsRegisteredTool(t *testing.T) {
	r := NewRunner([]Tool{&fakeTool{name: "a"}})
	result, err := r.Execute(context.Background(), "a", json.RawMessage(`{}`), ToolContext{})
	testutil.RequireNoError(t, err, "execute should not return a Go error for a registered tool")
	testutil.RequireEqual(t, result.Content, "a ran", "executed tool's result surfaces")
	testutil.RequireTrue(t, !result.IsError, "successful run is not an error result")
}

func TestRunnerExecuteUnknownNameReturnsErrorResultNotGoError(t *testing.T) {
	r := NewRunner([]Tool{&fakeTool{name: "a"}})
	result, err := r.Execute(context.Background(), "missing", json.RawMessage(`{}`), ToolContext{})
	testutil.RequireNoError(t, err, "an unregistered tool name is reported via ToolResult, not a Go error")
	testutil.RequireTrue(t, result.IsError, "unregistered tool name yields an error result")
	testutil.RequireStringContains(t, result.Content, "missing", "error message names the requested tool")
}
