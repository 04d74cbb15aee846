package tools

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/openclaude/openclaude/internal/message"
)

const maxGrepOutputBytes = 8000

// GrepTool searches files under a path for lines matching a regular
// expression, optionally restricted to files matching an include glob. It
// walks the filesystem in-process rather than spawning a subprocess; a
// directory-walk failure surfaces as an error result, while a file that
// cannot be opened is skipped.
type GrepTool struct{}

func (t *GrepTool) Name() string        { return "grep" }
func (t *GrepTool) Description() string { return "Search files for lines matching a regular expression." }

func (t *GrepTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pattern": map[string]any{"type": "string", "description": "Regular expression to search for."},
			"path":    map[string]any{"type": "string", "description": "File or directory to search. Defaults to the working directory."},
			"include": map[string]any{"type": "string", "description": "Glob restricting which files are searched."},
		},
		"required": []string{"pattern"},
	}
}

type grepPayload struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
	Include string `json:"include"`
}

func (t *GrepTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	var payload grepPayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
	}

	re, err := regexp.Compile(payload.Pattern)
	if err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid pattern: %v", err), IsError: true}, nil
	}

	root := toolCtx.CWD
	if payload.Path != "" {
		root = resolvePath(toolCtx.CWD, payload.Path)
	}
	if root == "" {
		root = "."
	}

	var b strings.Builder
	truncated := false

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if payload.Include != "" {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			if !globMatch(payload.Include, filepath.ToSlash(rel)) {
				return nil
			}
		}
		if truncated {
			return nil
		}
		searchFile(path, re, &b, &truncated)
		return nil
	})
	if walkErr != nil {
		return message.ToolResult{Content: fmt.Sprintf("directory walk failure: %v", walkErr), IsError: true}, nil
	}

	out := b.String()
	if truncated {
		out += "...[truncated]"
	}
	return message.ToolResult{Content: out}, nil
}

func searchFile(path string, re *regexp.Regexp, b *strings.Builder, truncated *bool) {
	f, err := os.Open(path)
	if err != nil {
		return // unreadable file: silently skipped
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !re.MatchString(line) {
			continue
		}
		entry := fmt.Sprintf("%s:%d:%s\n", path, lineNum, line)
		if b.Len()+len(entry) > maxGrepOutputBytes {
			*truncated = true
			return
		}
		b.WriteString(entry)
	}
}
