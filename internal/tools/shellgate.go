package tools

import (
	"path/filepath"
	"strings"
)

// ExecSecurity is the shell-command safety gate's mode, independent of the
// tool profile.
type ExecSecurity string

const (
	ExecFull      ExecSecurity = "full"      // unconditional allow
	ExecDeny      ExecSecurity = "deny"      // unconditional refuse
	ExecAllowlist ExecSecurity = "allowlist" // gated, see checkAllowlist
)

// rejectedSubstrings is the fixed reject-list a command string is scanned
// for before any tokenization happens, in allowlist mode. This catches
// shell metacharacters that would let an allowed leading command chain into
// a disallowed one: a command containing `|` is rejected outright even when
// its leading token is itself allowed.
var rejectedSubstrings = []string{
	";", "&&", "|", "`", "$(", "<<", "<(", ">(", "\n", "\r",
}

// ShellGate evaluates the security mode plus, in allowlist mode, the
// command against a configured allowlist.
type ShellGate struct {
	Security  ExecSecurity
	Allowlist []string
}

// Allow reports whether command may be executed, and if not, a short reason
// suitable for a denial ToolResult / log line.
func (g ShellGate) Allow(command string) (bool, string) {
	switch g.Security {
	case ExecFull:
		return true, ""
	case ExecDeny:
		return false, "shell execution is disabled"
	case ExecAllowlist:
		return g.checkAllowlist(command)
	default:
		return false, "unknown shell security mode"
	}
}

func (g ShellGate) checkAllowlist(command string) (bool, string) {
	for _, sub := range rejectedSubstrings {
		if strings.Contains(command, sub) {
			return false, "command contains a disallowed shell metacharacter"
		}
	}

	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return false, "empty command"
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return false, "empty command"
	}
	base := filepath.Base(fields[0])

	for _, pattern := range g.Allowlist {
		if strings.HasSuffix(pattern, " ") {
			// Prefix form: trailing space marks pattern as a basename prefix.
			if strings.HasPrefix(base, strings.TrimRight(pattern, " ")) {
				return true, ""
			}
			continue
		}
		// Exact form: literal equality against the basename.
		if pattern == base {
			return true, ""
		}
	}
	return false, "command not in allowlist"
}
