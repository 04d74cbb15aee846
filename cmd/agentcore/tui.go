package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/openclaude/openclaude/internal/agentloop"
	"github.com/openclaude/openclaude/internal/session"
)

type tuiTheme struct {
	User      lipgloss.AdaptiveColor
	Assistant lipgloss.AdaptiveColor
	Tool      lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Dim       lipgloss.AdaptiveColor
}

func defaultTheme() tuiTheme {
	return tuiTheme{
		User:      lipgloss.AdaptiveColor{Light: "#1a6fb0", Dark: "#6cb6ff"},
		Assistant: lipgloss.AdaptiveColor{Light: "#222222", Dark: "#dddddd"},
		Tool:      lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafff"},
		Error:     lipgloss.AdaptiveColor{Light: "#a40000", Dark: "#ff6b6b"},
		Dim:       lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"},
	}
}

// tuiModel is a small full-screen chat UI: a scrolling transcript viewport
// over a growing markdown-rendered buffer, and a one-line input textarea.
type tuiModel struct {
	loop *agentloop.Loop
	sess *session.Session

	theme    tuiTheme
	chat     viewport.Model
	input    textarea.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	transcript string
	running    bool
	err        error
}

type turnDoneMsg struct {
	result *agentloop.Result
	err    error
}

// runTUI launches the interactive chat program. It requires a real
// terminal on both ends of stdio; callers without one should use --print.
func runTUI(loop *agentloop.Loop, sess *session.Session) error {
	if !term.IsTerminal(0) || !term.IsTerminal(1) {
		return fmt.Errorf("interactive mode requires a TTY; use --print for non-interactive runs")
	}
	m := newTUIModel(loop, sess)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newTUIModel(loop *agentloop.Loop, sess *session.Session) *tuiModel {
	input := textarea.New()
	input.Placeholder = "Send a message..."
	input.Focus()
	input.CharLimit = 0
	input.SetHeight(3)

	chat := viewport.New(80, 20)
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renderer, _ := glamour.NewTermRenderer(glamour.WithAutoStyle())

	return &tuiModel{
		loop:     loop,
		sess:     sess,
		theme:    defaultTheme(),
		chat:     chat,
		input:    input,
		spin:     sp,
		renderer: renderer,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.chat.Width = msg.Width
		m.chat.Height = msg.Height - 5
		m.input.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.running {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.appendLine(m.theme.User, "you", text)
			m.sess.AddUserMessage(text)
			m.running = true
			return m, tea.Batch(m.spin.Tick, runTurn(m.loop, m.sess))
		}

	case turnDoneMsg:
		m.running = false
		if msg.err != nil {
			m.err = msg.err
			m.appendLine(m.theme.Error, "error", msg.err.Error())
		} else {
			m.appendLine(m.theme.Assistant, "assistant", msg.result.FinalText)
		}
		return m, nil

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var inputCmd, chatCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.chat, chatCmd = m.chat.Update(msg)
	return m, tea.Batch(inputCmd, chatCmd)
}

func (m *tuiModel) View() string {
	status := ""
	if m.running {
		status = m.spin.View() + " working..."
	}
	return fmt.Sprintf("%s\n%s\n%s\n", m.chat.View(), status, m.input.View())
}

func (m *tuiModel) appendLine(color lipgloss.AdaptiveColor, label, text string) {
	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	rendered := text
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			rendered = out
		}
	}
	m.transcript += style.Render(label+":") + " " + rendered + "\n"
	m.chat.SetContent(m.transcript)
	m.chat.GotoBottom()
}

func runTurn(loop *agentloop.Loop, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		result, err := loop.Run(context.Background(), sess)
		return turnDoneMsg{result: result, err: err}
	}
}
