package statussink

import (
	"bytes"
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func TestOnTextDeltaWritesUnchanged(t *testing.T) {
	var buf bytes.Buffer
	s := &Sink{Out: &buf, Fd: -1}
	s.OnTextDelta("hello world")
	testutil.RequireEqual(t, buf.String(), "hello world", "text deltas pass through verbatim")
}

func TestOnToolCallStartedIncludesNameAndInput(t *testing.T) {
	var buf bytes.Buffer
	s := &Sink{Out: &buf, Fd: -1}
	s.OnToolCallStarted("shell", `{"command":"ls"}`)
	testutil.RequireStringContains(t, buf.String(), "shell", "tool name present")
	testutil.RequireStringContains(t, buf.String(), "command", "input preview present")
}

func TestOnToolResultPreviewPlainForSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := &Sink{Out: &buf, Fd: -1}
	s.OnToolResultPreview("read", "file contents", false)
	testutil.RequireStringContains(t, buf.String(), "file contents", "preview present")
}

func TestOnToolResultPreviewForError(t *testing.T) {
	var buf bytes.Buffer
	s := &Sink{Out: &buf, Fd: -1}
	s.OnToolResultPreview("read", "not found", true)
	testutil.RequireStringContains(t, buf.String(), "not found", "error preview present")
}

func TestWidthFallsBackWhenNotATerminal(t *testing.T) {
	s := &Sink{Fd: -1}
	testutil.RequireEqual(t, s.width(), fallbackWidth, "an invalid fd is never a terminal, so the fallback width applies")
}

func TestTruncateForDisplayShortStringUnchanged(t *testing.T) {
	testutil.RequireEqual(t, truncateForDisplay("short", 80), "short", "a string under the width limit is unchanged")
}

func TestTruncateForDisplayLongStringCutWithEllipsis(t *testing.T) {
	long := "0123456789"
	out := truncateForDisplay(long, 5)
	testutil.RequireEqual(t, out, "0123…", "the string is cut to width-1 plus an ellipsis")
}

func TestRetryWarningWritesLine(t *testing.T) {
	var buf bytes.Buffer
	RetryWarning(&buf, "retrying provider call")
	testutil.RequireStringContains(t, buf.String(), "retrying provider call", "retry warning text present")
}
