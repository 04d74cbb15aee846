package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openclaude/openclaude/internal/message"
)

// WriteTool writes a file, creating parent directories as needed.
type WriteTool struct{}

func (t *WriteTool) Name() string        { return "write" }
func (t *WriteTool) Description() string { return "Write content to a file, creating it if needed." }

func (t *WriteTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{"type": "string", "description": "Path to the file to write."},
			"content":   map[string]any{"type": "string", "description": "Content to write."},
		},
		"required": []string{"file_path", "content"},
	}
}

type writePayload struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

func (t *WriteTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	var payload writePayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
	}

	path := resolvePath(toolCtx.CWD, payload.FilePath)
	if isSensitivePath(path) {
		return message.ToolResult{Content: "refusing to write a sensitive path", IsError: true}, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
		backupFile(toolCtx, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("cannot create parent directory: %v", err), IsError: true}, nil
	}

	data := []byte(payload.Content)
	if err := writeAtomic(path, data, mode); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("write failed: %v", err), IsError: true}, nil
	}

	return message.ToolResult{Content: fmt.Sprintf("wrote %d bytes to %s", len(data), payload.FilePath)}, nil
}
