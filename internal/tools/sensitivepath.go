package tools

import (
	"path/filepath"
	"strings"
)

// sensitiveSubstrings are the fixed strings a lexically-normalized path is
// checked against before any file-tool operation. The check is lexical
// only, deliberately: a real-path (symlink-resolving) check would be
// stronger but introduces TOCTOU and platform concerns out of scope for the
// intended threat model of accidental access, not adversarial symlink
// attacks.
var sensitiveSubstrings = []string{
	"/etc/shadow",
	"/etc/gshadow",
	"/etc/master.passwd",
	"/.ssh/",
	"/.gnupg/",
	"/.aws/credentials",
	"/.config/gcloud/",
	"/.docker/config.json",
}

// isSensitivePath reports whether path (after lexically collapsing `.` and
// `..` segments, with no filesystem access) matches one of the fixed
// sensitive substrings.
func isSensitivePath(path string) bool {
	normalized := filepath.Clean(path)
	// filepath.Clean uses the OS separator; the guard's substrings are
	// POSIX-style, so normalize to forward slashes for the comparison.
	normalized = strings.ReplaceAll(normalized, "\\", "/")
	for _, sub := range sensitiveSubstrings {
		if strings.Contains(normalized, sub) {
			return true
		}
	}
	return false
}
