package prompt

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	optionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	defaultHint = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

const (
	inputPrompt  = "> "
	defaultWidth = 80
)

// Terminal is a [Prompter] that reads each answer with an interactive line
// editor. Ctrl+C aborts the prompt with [ErrAborted].
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns a Terminal prompter using the given streams, which
// should refer to a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Prompt displays msg and runs the line editor until the operator submits
// or aborts.
func (t *Terminal) Prompt(ctx context.Context, msg string) (string, error) {
	p := tea.NewProgram(
		newModel(msg),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(model)
	if !ok || m.aborted {
		return "", ErrAborted
	}

	return m.input.Value(), nil
}

// model is the Bubble Tea model of a single prompt.
type model struct {
	header  []string
	input   textinput.Model
	done    bool
	aborted bool
}

// newModel splits msg into its header lines and the text preceding the
// cursor. A message ending in a newline, as list prompts do, leaves the
// cursor on a line of its own.
func newModel(msg string) model {
	lines := strings.Split(msg, "\n")
	last := lines[len(lines)-1]

	ti := textinput.New()
	ti.Prompt = inputPrompt
	if last != "" {
		ti.Prompt = renderMessage(last)
	}

	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{header: lines[:len(lines)-1], input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.aborted = true

			return m, tea.Quit

		case tea.KeyEnter:
			m.done = true

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	for i, line := range m.header {
		switch {
		case i == 0:
			b.WriteString(renderMessage(line))
		case strings.HasPrefix(line, "\t"):
			b.WriteString(optionStyle.Render(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	if m.done {
		b.WriteString(m.input.Prompt)
		b.WriteString(answerStyle.Render(m.input.Value()))
		b.WriteString("\n")

		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	return b.String()
}

// renderMessage styles a message, dimming its trailing default hint.
func renderMessage(line string) string {
	i := strings.LastIndex(line, " [default:")
	if i < 0 {
		return messageStyle.Render(line)
	}

	return messageStyle.Render(line[:i]) + defaultHint.Render(line[i:])
}
