package tools

import (
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func TestShellGateFullAllowsAnything(t *testing.T) {
	g := ShellGate{Security: ExecFull}
	allowed, _ := g.Allow("rm -rf /")
	testutil.RequireTrue(t, allowed, "full security mode allows any command")
}

func TestShellGateDenyRejectsEverything(t *testing.T) {
	g := ShellGate{Security: ExecDeny}
	allowed, reason := g.Allow("ls")
	testutil.RequireTrue(t, !allowed, "deny mode refuses every command")
	testutil.RequireTrue(t, reason != "", "a reason is given")
}

func TestShellGateAllowlistExactMatch(t *testing.T) {
	g := ShellGate{Security: ExecAllowlist, Allowlist: []string{"ls", "cat"}}
	allowed, _ := g.Allow("ls -la")
	testutil.RequireTrue(t, allowed, "an exact basename match in the allowlist is permitted")
}

func TestShellGateAllowlistPrefixMatch(t *testing.T) {
	g := ShellGate{Security: ExecAllowlist, Allowlist: []string{"git "}}
	allowed, _ := g.Allow("git status")
	testutil.RequireTrue(t, allowed, "a trailing-space pattern matches as a basename prefix")
}

func TestShellGateAllowlistRejectsUnlistedCommand(t *testing.T) {
	g := ShellGate{Security: ExecAllowlist, Allowlist: []string{"ls"}}
	allowed, reason := g.Allow("rm -rf /")
	testutil.RequireTrue(t, !allowed, "a command whose basename isn't in the allowlist is refused")
	testutil.RequireTrue(t, reason != "", "a reason is given")
}

func TestShellGateAllowlistRejectsMetacharacterChaining(t *testing.T) {
	g := ShellGate{Security: ExecAllowlist, Allowlist: []string{"ls"}}
	allowed, _ := g.Allow("ls; rm -rf /")
	testutil.RequireTrue(t, !allowed, "a semicolon chains in a disallowed command even though the leading token is allowed")

	allowed2, _ := g.Allow("ls | rm -rf /")
	testutil.RequireTrue(t, !allowed2, "a pipe chains in a disallowed command even though the leading token is allowed")

	allowed3, _ := g.Allow("ls $(rm -rf /)")
	testutil.RequireTrue(t, !allowed3, "command substitution is rejected outright")
}

func TestShellGateAllowlistRejectsEmptyCommand(t *testing.T) {
	g := ShellGate{Security: ExecAllowlist, Allowlist: []string{"ls"}}
	allowed, reason := g.Allow("   ")
	testutil.RequireTrue(t, !allowed, "an empty command is refused")
	testutil.RequireTrue(t, reason != "", "a reason is given")
}

func TestShellGateUnknownSecurityModeRefuses(t *testing.T) {
	g := ShellGate{Security: "bogus"}
	allowed, _ := g.Allow("ls")
	testutil.RequireTrue(t, !allowed, "an unrecognized security mode defaults to refusal")
}
