package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func TestEditToolReplacesUniqueOccurrence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "package main\n\nfunc old() {}\n")

	var et EditTool
	input, _ := json.Marshal(map[string]any{"file_path": path, "old_string": "func old()", "new_string": "func new()"})
	result, err := et.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "edit")
	testutil.RequireTrue(t, !result.IsError, "a unique match should succeed")

	data, readErr := os.ReadFile(path)
	testutil.RequireNoError(t, readErr, "read back edited file")
	testutil.RequireStringContains(t, string(data), "func new()", "replacement applied")
}

func TestEditToolNotFoundOldString(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "package main\n")

	var et EditTool
	input, _ := json.Marshal(map[string]any{"file_path": path, "old_string": "nope", "new_string": "x"})
	result, err := et.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "not-found is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "a missing old_string is an error result")
}

func TestEditToolRejectsNonUniqueOldString(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "x\nx\n")

	var et EditTool
	input, _ := json.Marshal(map[string]any{"file_path": path, "old_string": "x", "new_string": "y"})
	result, err := et.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "non-uniqueness is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "a non-unique old_string is refused")
	testutil.RequireStringContains(t, result.Content, "2", "error message names the occurrence count")
}

func TestEditToolRequiresExistingFile(t *testing.T) {
	dir := t.TempDir()
	var et EditTool
	input, _ := json.Marshal(map[string]any{"file_path": filepath.Join(dir, "missing.go"), "old_string": "a", "new_string": "b"})
	result, err := et.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "missing file is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "editing a non-existent file is an error result")
}

func TestEditToolRefusesSensitivePath(t *testing.T) {
	var et EditTool
	input, _ := json.Marshal(map[string]any{"file_path": "/etc/shadow", "old_string": "a", "new_string": "b"})
	result, err := et.Run(context.Background(), input, ToolContext{})
	testutil.RequireNoError(t, err, "refusal is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "editing a sensitive path must be refused")
}
