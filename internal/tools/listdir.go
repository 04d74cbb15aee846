package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/openclaude/openclaude/internal/message"
)

// ListDirTool lists directory entries, a natural companion to read/glob.
type ListDirTool struct{}

func (t *ListDirTool) Name() string        { return "listdir" }
func (t *ListDirTool) Description() string { return "List entries in a directory." }

func (t *ListDirTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{"type": "string", "description": "Directory path to list."},
		},
		"required": []string{"path"},
	}
}

type listDirPayload struct {
	Path string `json:"path"`
}

func (t *ListDirTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	var payload listDirPayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
	}

	path := resolvePath(toolCtx.CWD, payload.Path)
	if isSensitivePath(path) {
		return message.ToolResult{Content: "refusing to list a sensitive path", IsError: true}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return message.ToolResult{Content: fmt.Sprintf("directory not found: %s", payload.Path), IsError: true}, nil
		}
		return message.ToolResult{Content: fmt.Sprintf("cannot list directory: %v", err), IsError: true}, nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return message.ToolResult{Content: strings.Join(names, "\n")}, nil
}
