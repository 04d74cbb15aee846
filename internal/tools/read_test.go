package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	testutil.RequireNoError(t, os.WriteFile(path, []byte(content), 0o644), "write fixture file")
	return path
}

func TestReadToolReturnsNumberedLines(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "line one\nline two\nline three\n")

	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": path})
	result, err := rt.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "read")
	testutil.RequireTrue(t, !result.IsError, "read should succeed")
	testutil.RequireStringContains(t, result.Content, "line one", "first line present")
	testutil.RequireStringContains(t, result.Content, "line three", "last line present")
}

func TestReadToolOffsetAndLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "one\ntwo\nthree\nfour\n")

	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": path, "offset": 2, "limit": 2})
	result, err := rt.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "read")
	testutil.RequireStringContains(t, result.Content, "two", "offset skips the first line")
	testutil.RequireStringContains(t, result.Content, "three", "limit keeps the second requested line")
	testutil.RequireTrue(t, !strings.Contains(result.Content, "four"), "limit excludes lines beyond the window")
}

func TestReadToolOffsetPastEOFIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "one\ntwo\n")

	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": path, "offset": 100})
	result, err := rt.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "read")
	testutil.RequireTrue(t, !result.IsError, "an offset past EOF is empty, not an error")
}

func TestReadToolRefusesSensitivePath(t *testing.T) {
	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": "/etc/shadow"})
	result, err := rt.Run(context.Background(), input, ToolContext{})
	testutil.RequireNoError(t, err, "refusal is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "sensitive path read must be refused")
}

func TestReadToolNotFound(t *testing.T) {
	dir := t.TempDir()
	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": filepath.Join(dir, "missing.txt")})
	result, err := rt.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "not-found is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "missing file is an error result")
}

func TestReadToolRefusesDirectory(t *testing.T) {
	dir := t.TempDir()
	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": dir})
	result, err := rt.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "is-a-directory is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "reading a directory is an error result")
}

func TestReadToolRefusesBinaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin.dat")
	testutil.RequireNoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02, 'a'}, 0o644), "write binary fixture")

	var rt ReadTool
	input, _ := json.Marshal(map[string]any{"file_path": path})
	result, err := rt.Run(context.Background(), input, ToolContext{CWD: dir})
	testutil.RequireNoError(t, err, "binary refusal is reported via ToolResult")
	testutil.RequireTrue(t, result.IsError, "a file with a null byte is refused as binary")
}
