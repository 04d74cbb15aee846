package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openclaude/openclaude/internal/message"
)

// EditTool performs an exact, occurrence-counted string replacement in a
// file: exactly one occurrence succeeds; zero is "not found"; more than one
// is "not unique".
type EditTool struct{}

func (t *EditTool) Name() string        { return "edit" }
func (t *EditTool) Description() string { return "Replace an exact, unique string occurrence in a file." }

func (t *EditTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path":  map[string]any{"type": "string", "description": "Path to the file to edit."},
			"old_string": map[string]any{"type": "string", "description": "Exact text to replace; must occur exactly once."},
			"new_string": map[string]any{"type": "string", "description": "Replacement text."},
		},
		"required": []string{"file_path", "old_string", "new_string"},
	}
}

type editPayload struct {
	FilePath  string `json:"file_path"`
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
}

func (t *EditTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	var payload editPayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
	}

	path := resolvePath(toolCtx.CWD, payload.FilePath)
	if isSensitivePath(path) {
		return message.ToolResult{Content: "refusing to edit a sensitive path", IsError: true}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return message.ToolResult{Content: fmt.Sprintf("file not found: %s", payload.FilePath), IsError: true}, nil
		}
		return message.ToolResult{Content: fmt.Sprintf("cannot stat file: %v", err), IsError: true}, nil
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return message.ToolResult{Content: fmt.Sprintf("cannot read file: %v", err), IsError: true}, nil
	}
	content := string(original)

	count := strings.Count(content, payload.OldString)
	switch {
	case count == 0:
		return message.ToolResult{Content: "old_string not found in file", IsError: true}, nil
	case count > 1:
		return message.ToolResult{Content: fmt.Sprintf("old_string is not unique: found %d occurrences", count), IsError: true}, nil
	}

	updated := strings.Replace(content, payload.OldString, payload.NewString, 1)

	backupFile(toolCtx, path)
	if err := writeAtomic(path, []byte(updated), info.Mode()); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("write failed: %v", err), IsError: true}, nil
	}

	return message.ToolResult{Content: fmt.Sprintf("edited %s", payload.FilePath)}, nil
}
