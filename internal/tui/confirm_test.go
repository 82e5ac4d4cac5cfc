package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m confirmModel, msg tea.KeyMsg) (confirmModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(confirmModel), cmd
}

func TestConfirmModelDefaultsToNo(t *testing.T) {
	m := newConfirmModel("Add Button?")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.done {
		t.Fatal("expected model to be done after enter")
	}
	if m.value {
		t.Error("expected default answer No")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestConfirmModelYesKey(t *testing.T) {
	m := newConfirmModel("Add Button?")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	if !m.done || !m.value {
		t.Errorf("expected done=true value=true, got done=%v value=%v", m.done, m.value)
	}
	if !strings.Contains(m.View(), "Yes") {
		t.Errorf("expected final view to show Yes, got %q", m.View())
	}
}

func TestConfirmModelToggleThenSubmit(t *testing.T) {
	m := newConfirmModel("Add Button?")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if cmd != nil {
		t.Error("toggle should not quit")
	}
	if !m.value {
		t.Fatal("expected toggle to select Yes")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done || !m.value {
		t.Errorf("expected Yes to be submitted, got done=%v value=%v", m.done, m.value)
	}
}

func TestConfirmModelCancelIsNo(t *testing.T) {
	m := newConfirmModel("Add Button?")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.done || m.value {
		t.Errorf("expected cancel to answer No, got done=%v value=%v", m.done, m.value)
	}
}

func TestConfirmModelIgnoresKeysAfterDone(t *testing.T) {
	m := newConfirmModel("Add Button?")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	if m.value {
		t.Error("answer changed after completion")
	}
	if cmd != nil {
		t.Error("expected no command after completion")
	}
}

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := &LinePrompter{In: strings.NewReader(tt.input), Out: &out}
		got, err := p.Confirm(context.Background(), "Add Button?")
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("input %q: got %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Add Button? (y/N)") {
			t.Errorf("input %q: question not written, got %q", tt.input, out.String())
		}
	}
}

func TestLinePrompterReadsSequentialAnswers(t *testing.T) {
	var out bytes.Buffer
	p := &LinePrompter{In: strings.NewReader("y\nn\n"), Out: &out}

	first, _ := p.Confirm(context.Background(), "first?")
	second, _ := p.Confirm(context.Background(), "second?")
	if !first || second {
		t.Errorf("got %v, %v; want true, false", first, second)
	}
}

func TestLinePrompterCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &LinePrompter{In: strings.NewReader("y\n"), Out: &bytes.Buffer{}}
	if _, err := p.Confirm(ctx, "q?"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNewPrompterNonTerminal(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	if _, ok := p.(*LinePrompter); !ok {
		t.Fatalf("expected *LinePrompter, got %T", p)
	}
}

func TestStaticPrompter(t *testing.T) {
	got, err := StaticPrompter{Answer: true}.Confirm(context.Background(), "q?")
	if err != nil || !got {
		t.Fatalf("got %v, %v", got, err)
	}
}
