// Package tools implements the tool registry: dispatch by name, the
// profile/shell-gate/sensitive-path policy layers, and the concrete tool
// implementations (shell, read, write, edit, glob, grep, plus a small
// supplemented set).
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openclaude/openclaude/internal/message"
)

// ToolContext carries the per-invocation environment a tool runs with.
type ToolContext struct {
	// CWD is the working directory relative paths resolve against.
	CWD string
	// SessionID, if set, scopes write/edit backups (see fileops.go).
	SessionID string
	// BackupBaseDir is the root backups are written under; empty disables
	// backups entirely.
	BackupBaseDir string
}

// Tool is a named, schema-described capability the registry can dispatch.
type Tool interface {
	Name() string
	Description() string
	Schema() map[string]any
	Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error)
}

// Runner holds the registered tool set and dispatches by name, in
// first-seen registration order.
type Runner struct {
	tools map[string]Tool
	order []string
}

// NewRunner builds a Runner from a tool list, de-duplicating by name and
// preserving first-seen order.
func NewRunner(tools []Tool) *Runner {
	r := &Runner{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		name := t.Name()
		if _, exists := r.tools[name]; exists {
			continue
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}
	return r
}

// Definitions returns the registry's tool definitions in registration order.
func (r *Runner) Definitions() []message.ToolDefinition {
	defs := make([]message.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		schemaJSON, err := json.Marshal(t.Schema())
		if err != nil {
			schemaJSON = []byte("{}")
		}
		defs = append(defs, message.ToolDefinition{
			Name:            t.Name(),
			Description:     t.Description(),
			InputSchemaJSON: string(schemaJSON),
		})
	}
	return defs
}

// Names returns the registered tool names in order.
func (r *Runner) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Execute dispatches a tool call by name. A call to an unregistered name
// returns a synthetic error ToolResult rather than a Go error, the same
// convention used for a disallowed or policy-denied call.
func (r *Runner) Execute(ctx context.Context, name string, args json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	t, ok := r.tools[name]
	if !ok {
		return message.ToolResult{Content: fmt.Sprintf("tool not found: %s", name), IsError: true}, nil
	}
	return t.Run(ctx, args, toolCtx)
}
