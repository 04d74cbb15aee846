package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openclaude/openclaude/internal/message"
)

const maxGlobMatches = 1000

// GlobTool matches files under a base directory against a pattern using
// `*` (any run excluding '/'), `**` (any run including '/'), and `?` (one
// non-'/' character), via a small backtracking matcher rather than a
// third-party glob library.
type GlobTool struct{}

func (t *GlobTool) Name() string        { return "glob" }
func (t *GlobTool) Description() string { return "Find files matching a glob pattern." }

func (t *GlobTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pattern": map[string]any{"type": "string", "description": "Glob pattern, supporting *, ** and ?."},
			"base":    map[string]any{"type": "string", "description": "Directory to search from. Defaults to the working directory."},
		},
		"required": []string{"pattern"},
	}
}

type globPayload struct {
	Pattern string `json:"pattern"`
	Base    string `json:"base"`
}

func (t *GlobTool) Run(ctx context.Context, input json.RawMessage, toolCtx ToolContext) (message.ToolResult, error) {
	var payload globPayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return message.ToolResult{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
	}

	base := toolCtx.CWD
	if payload.Base != "" {
		base = resolvePath(toolCtx.CWD, payload.Base)
	}
	if base == "" {
		base = "."
	}

	var matches []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == base {
			return nil
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if globMatch(payload.Pattern, rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return message.ToolResult{Content: fmt.Sprintf("directory open failure: %v", err), IsError: true}, nil
	}

	sort.Strings(matches)

	truncated := false
	if len(matches) > maxGlobMatches {
		matches = matches[:maxGlobMatches]
		truncated = true
	}

	out := strings.Join(matches, "\n")
	if truncated {
		if out != "" {
			out += "\n"
		}
		out += fmt.Sprintf("...[truncated to %d matches]", maxGlobMatches)
	}
	return message.ToolResult{Content: out}, nil
}

// globMatch reports whether name matches pattern: '*' matches any run
// excluding '/', '**' matches any run including '/' (absorbing one optional
// trailing '/'), and '?' matches exactly one non-'/' character. It is a
// backtracking matcher over the two strings' byte positions.
func globMatch(pattern, name string) bool {
	return matchFrom(pattern, name, 0, 0)
}

func matchFrom(pattern, name string, pi, ni int) bool {
	for pi < len(pattern) {
		switch pattern[pi] {
		case '*':
			if pi+1 < len(pattern) && pattern[pi+1] == '*' {
				// '**' — matches any run, including '/'.
				pi += 2
				if pi < len(pattern) && pattern[pi] == '/' {
					pi++ // absorb one optional trailing separator
				}
				if pi == len(pattern) {
					return true
				}
				for k := ni; k <= len(name); k++ {
					if matchFrom(pattern, name, pi, k) {
						return true
					}
				}
				return false
			}
			// '*' — matches any run excluding '/'.
			pi++
			for k := ni; k <= len(name); k++ {
				if k > ni && name[k-1] == '/' {
					break
				}
				if matchFrom(pattern, name, pi, k) {
					return true
				}
			}
			return false
		case '?':
			if ni >= len(name) || name[ni] == '/' {
				return false
			}
			pi++
			ni++
		default:
			if ni >= len(name) || pattern[pi] != name[ni] {
				return false
			}
			pi++
			ni++
		}
	}
	return ni == len(name)
}
