// Package statussink implements the terminal-facing agentloop.StatusSink:
// streamed text written through unchanged, tool-call starts and results
// rendered with a small lipgloss color palette, and long previews
// truncated to the live terminal width when stdout is a real terminal.
package statussink

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const fallbackWidth = 80

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a6d00", Dark: "#e5c100"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#a40000", Dark: "#ff6b6b"})
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafff"})
)

// Sink writes agent-loop progress to a terminal, coloring warnings and tool
// errors and truncating previews to the current terminal width.
type Sink struct {
	Out io.Writer
	Fd  int // file descriptor checked for terminal width; defaults to stdout
}

// NewTerminalSink returns a Sink writing to os.Stdout, width-aware when
// stdout is a real terminal.
func NewTerminalSink() *Sink {
	return &Sink{Out: os.Stdout, Fd: int(os.Stdout.Fd())}
}

func (s *Sink) width() int {
	if !term.IsTerminal(s.Fd) {
		return fallbackWidth
	}
	w, _, err := term.GetSize(s.Fd)
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

func truncateForDisplay(s string, width int) string {
	if width <= 1 || len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}

// OnTextDelta writes a streamed text fragment as-is.
func (s *Sink) OnTextDelta(text string) {
	fmt.Fprint(s.Out, text)
}

// OnToolCallStarted announces a tool invocation before it runs.
func (s *Sink) OnToolCallStarted(name string, inputJSON string) {
	preview := truncateForDisplay(inputJSON, s.width())
	fmt.Fprintln(s.Out, toolStyle.Render(fmt.Sprintf("-> %s %s", name, preview)))
}

// OnToolResultPreview renders a tool result, red when it's an error.
func (s *Sink) OnToolResultPreview(name string, preview string, isError bool) {
	line := fmt.Sprintf("<- %s %s", name, truncateForDisplay(preview, s.width()))
	if isError {
		fmt.Fprintln(s.Out, errorStyle.Render(line))
		return
	}
	fmt.Fprintln(s.Out, line)
}

// RetryWarning renders a single yellow-tinted warning line for one retry
// attempt, matching the agent loop's retry-band logging contract.
func RetryWarning(w io.Writer, line string) {
	fmt.Fprintln(w, warningStyle.Render(line))
}
