package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openclaude/openclaude/internal/message"
)

const (
	defaultReadLimitLines = 2000
	maxLineBytes          = 2000
)

// ReadTool reads a file and renders it cat -n style.
type ReadTool struct{}

func (t *ReadTool) Name() string        { return "read" }
func (t *ReadTool) Description() string { return "Read a file, optionally a line range, with line numbers." }

func (t *ReadTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{"type": "string", "description": "Path to the file to read."},
			"offset":    map[string]any{"type": "integer", "description": "1-based starting line."},
			"limit":     map[string]any{"type": "integer", "description": "Maximum number of lines to return. Defaults to 2000."},
		},
		"required": []string{"file_path"},
	}
}

type readPayload struct {
	FilePath string `json:"file_path"`
	Offset   *int   `json:"offset"`
	Limit    *int   `json:"limit"`
}

func (t *ReadTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	var payload readPayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
	}

	path := resolvePath(toolCtx.CWD, payload.FilePath)
	if isSensitivePath(path) {
		return message.ToolResult{Content: "refusing to read a sensitive path", IsError: true}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return message.ToolResult{Content: fmt.Sprintf("file not found: %s", payload.FilePath), IsError: true}, nil
		}
		return message.ToolResult{Content: fmt.Sprintf("cannot stat file: %v", err), IsError: true}, nil
	}
	if info.IsDir() {
		return message.ToolResult{Content: fmt.Sprintf("%s is a directory", payload.FilePath), IsError: true}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return message.ToolResult{Content: fmt.Sprintf("cannot read file: %v", err), IsError: true}, nil
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return message.ToolResult{Content: "binary file detected", IsError: true}, nil
	}

	lines := splitLines(data)

	offset := 1
	if payload.Offset != nil && *payload.Offset > 0 {
		offset = *payload.Offset
	}
	limit := defaultReadLimitLines
	if payload.Limit != nil && *payload.Limit > 0 {
		limit = *payload.Limit
	}

	if offset > len(lines) {
		// Offset beyond the file length yields an empty, non-error result.
		return message.ToolResult{Content: ""}, nil
	}

	start := offset - 1
	end := start + limit
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		line := truncateBytes([]byte(lines[i]), maxLineBytes)
		fmt.Fprintf(&b, "%6d\t%s\n", lineNum, line)
	}

	return message.ToolResult{Content: b.String()}, nil
}

func splitLines(data []byte) []string {
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func resolvePath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if cwd == "" {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(cwd, path))
}
