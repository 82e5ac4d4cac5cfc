package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompter asks a yes/no question and blocks until it is answered.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "toggle")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
}

// confirmModel is a single yes/no question. The default answer is No.
type confirmModel struct {
	question string
	value    bool
	done     bool
	keys     confirmKeyMap
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question, keys: confirmKeys}
}

// Init satisfies the tea.Model interface.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update satisfies the tea.Model interface.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.value, m.done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Cancel):
		m.value, m.done = false, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Toggle):
		m.value = !m.value
	case key.Matches(keyMsg, m.keys.Submit):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m confirmModel) View() string {
	question := lipgloss.NewStyle().Bold(true).Render("? " + m.question)
	if m.done {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return question + " " + ComponentStyle.Render(answer) + "\n"
	}

	selected := lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	plain := lipgloss.NewStyle().Padding(0, 1)
	yes, no := plain.Render("Yes"), selected.Render("No")
	if m.value {
		yes, no = selected.Render("Yes"), plain.Render("No")
	}
	help := MutedStyle.Render("y/n, ←/→ to toggle, enter to confirm")
	return fmt.Sprintf("%s %s %s\n%s\n", question, yes, no, help)
}

// TerminalPrompter renders the question with bubbletea.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Prompter.
func (p TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	prog := tea.NewProgram(newConfirmModel(question),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
		tea.WithContext(ctx),
	)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("prompt: %w", err)
	}
	return final.(confirmModel).value, nil
}

// LinePrompter asks on one line and reads the answer from In. Anything other
// than y/yes, including end of input, is No.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm implements Prompter.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "? %s (y/N) ", question)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.Out)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// StaticPrompter answers every question with Answer, for --yes and tests.
type StaticPrompter struct {
	Answer bool
}

// Confirm implements Prompter.
func (p StaticPrompter) Confirm(context.Context, string) (bool, error) {
	return p.Answer, nil
}

// NewPrompter picks the bubbletea prompt when both streams are terminals and
// the line prompt otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if IsTerminal(in) && DetectMode(out, false) == ModeTUI {
		return TerminalPrompter{In: in, Out: out}
	}
	return &LinePrompter{In: in, Out: out}
}
