// Package agentlog provides the structured logger shared across the agent
// core, built on zerolog rather than fmt.Println diagnostics.
package agentlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the package-level logger every core component writes through.
var Logger = newDefault()

func newDefault() zerolog.Logger {
	var w io.Writer = os.Stderr
	if isTerminal(os.Stderr) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// SetOutput redirects the package logger, used by tests that want to capture
// or silence log output.
func SetOutput(w io.Writer) {
	Logger = zerolog.New(w).With().Timestamp().Logger()
}

// RetryWarning logs a single warning line for one retry attempt, the
// user-visible counterpart to statussink's yellow-tinted retry line.
func RetryWarning(attempt int, wait time.Duration, err error) {
	Logger.Warn().
		Int("attempt", attempt).
		Dur("wait", wait).
		Err(err).
		Msg("retrying provider call")
}

// PolicyDenied logs a tool call refused by the registry's policy layers.
func PolicyDenied(tool string, reason string) {
	Logger.Warn().
		Str("tool", tool).
		Str("reason", reason).
		Msg("tool call denied by policy")
}

// ShellTimeout logs a shell invocation that was killed after its timeout.
func ShellTimeout(command string, timeoutMS int) {
	Logger.Warn().
		Str("command", command).
		Int("timeout_ms", timeoutMS).
		Msg("shell command timed out")
}

// SessionSaveFailed logs a failed session save (temp write or rename).
func SessionSaveFailed(path string, err error) {
	Logger.Error().
		Str("path", path).
		Err(err).
		Msg("session save failed")
}
