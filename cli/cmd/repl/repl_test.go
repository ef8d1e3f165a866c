package repl

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/cfglang/lang"
	"github.com/ardnew/cfglang/log"
)

const document = "port: 8080\nhosts: << 'alpha', 'beta' >>\n"

func newTestSession(t *testing.T, src string) *Session {
	t.Helper()

	var r io.Reader
	if src != "" {
		r = strings.NewReader(src)
	}

	s, err := NewSession(t.Context(), r, log.Logger{})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, document)

	if got := s.Env().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	if got, want := s.Source(), strings.TrimSuffix(document, "\n"); got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}

	empty := newTestSession(t, "")
	if empty.Env().Len() != 0 || empty.Source() != "" {
		t.Errorf("empty session has %d constants", empty.Env().Len())
	}

	_, err := NewSession(t.Context(), strings.NewReader("x: ?[1 0 /]"), log.Logger{})
	if !errors.Is(err, lang.ErrDivisionByZero) {
		t.Errorf("NewSession(bad) error = %v, want ErrDivisionByZero", err)
	}
}

func TestIsDeclaration(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"x: 1", true},
		{"x : << >>", true},
		{"x", false},
		{"port 1 +", false},
		{"?[port 1 +]", false},
		{"'unterminated", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDeclaration(tt.line); got != tt.want {
			t.Errorf("IsDeclaration(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSession_Declare(t *testing.T) {
	s := newTestSession(t, document)

	added, err := s.Declare(t.Context(), "count: ?[len hosts]")
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	if diff := cmp.Diff([]string{"count"}, added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}

	v, ok := s.Env().Lookup("count")
	if !ok || !v.Equal(lang.NewInteger(2)) {
		t.Errorf("count = %v, %v", v, ok)
	}

	before := s.Source()

	for _, line := range []string{
		"port: 1",           // redeclared
		"bad: ?[missing]",   // undefined name
		"half: ?[port 0 /]", // division by zero
	} {
		if _, err := s.Declare(t.Context(), line); !errors.Is(err, lang.ErrSyntax) {
			t.Errorf("Declare(%q) error = %v, want ErrSyntax", line, err)
		}
	}

	if s.Source() != before || s.Env().Len() != 3 {
		t.Errorf("failed declarations changed the session: %q", s.Source())
	}
}

func TestSession_Eval(t *testing.T) {
	s := newTestSession(t, document)

	tests := []struct {
		line string
		want lang.Value
	}{
		{"port 1 +", lang.NewInteger(8081)},
		{"?[port 2 *]", lang.NewInteger(16160)},
		{"len hosts", lang.NewInteger(2)},
		{"hosts", lang.NewArray(lang.NewText("alpha"), lang.NewText("beta"))},
		{"7 2 /", lang.NewInteger(3)},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := s.Eval(tt.line)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}

	errs := []struct {
		line string
		want error
	}{
		{"prot", lang.ErrUndefinedName},
		{"'text'", lang.ErrExprToken},
		{"", lang.ErrInvalidExpression},
		{"1 2", lang.ErrInvalidExpression},
		{"hosts 1 +", lang.ErrNotInteger},
	}

	for _, tt := range errs {
		if _, err := s.Eval(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Eval(%q) error = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func TestEvalLine(t *testing.T) {
	s := newTestSession(t, document)

	out, err := evalLine(t.Context(), s, "next: ?[port 1 +]")
	if err != nil || out != "next: 8081" {
		t.Errorf("declare = %q, %v", out, err)
	}

	out, err = evalLine(t.Context(), s, "next hosts len +")
	if err != nil || out != "8083" {
		t.Errorf("eval = %q, %v", out, err)
	}
}

func TestRunCommand(t *testing.T) {
	s := newTestSession(t, document)

	out, err := runCommand(s, "show", []string{"hosts"})
	if err != nil || out != "hosts: << 'alpha', 'beta' >>" {
		t.Errorf("show = %q, %v", out, err)
	}

	if _, err := runCommand(s, "show", nil); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("show without name error = %v", err)
	}

	if _, err := runCommand(s, "show", []string{"host"}); !errors.Is(err, lang.ErrUndefinedName) {
		t.Errorf("show undefined error = %v", err)
	}

	out, err = runCommand(s, "list", nil)
	if err != nil || !strings.Contains(out, "port") || !strings.Contains(out, "hosts") {
		t.Errorf("list = %q, %v", out, err)
	}

	out, err = runCommand(s, "source", nil)
	if err != nil || out != s.Source() {
		t.Errorf("source = %q, %v", out, err)
	}

	if _, err := runCommand(s, "bogus", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("bogus error = %v", err)
	}

	if _, err := runCommand(s, "reset", nil); err != nil || s.Env().Len() != 0 {
		t.Errorf("reset left %d constants, %v", s.Env().Len(), err)
	}
}

func typeRunes(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func TestModel_CompleteAndSubmit(t *testing.T) {
	s := newTestSession(t, document)
	h := NewHistory("")
	m := newModel(t.Context(), s, h, log.Logger{})

	m = typeRunes(m, "po")
	if len(m.matches) != 1 || m.matches[0].Str != "port" {
		t.Fatalf("matches = %v, want [port]", m.matches)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "port" {
		t.Fatalf("after tab input = %q, want %q", got, "port")
	}

	m = typeRunes(m, " 1 +")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter returned no command")
	}

	if got := m.input.Value(); got != "" {
		t.Errorf("input not cleared: %q", got)
	}

	if diff := cmp.Diff([]HistoryEntry{{"port 1 +", modeEval}}, h.Entries()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_ModeAndHistory(t *testing.T) {
	s := newTestSession(t, document)
	h := NewHistory("")

	for _, e := range []HistoryEntry{{"port", modeEval}, {"list", modeCtrl}, {"hosts", modeEval}} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m := newModel(t.Context(), s, h, log.Logger{})
	m = typeRunes(m, "draft")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("esc: mode = %v, input = %q", m.mode, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval || m.input.Value() != "draft" {
		t.Fatalf("esc back: mode = %v, input = %q", m.mode, m.input.Value())
	}

	steps := []struct {
		key  tea.KeyType
		line string
		mode inputMode
	}{
		{tea.KeyUp, "hosts", modeEval},
		{tea.KeyUp, "list", modeCtrl},
		{tea.KeyUp, "port", modeEval},
		{tea.KeyUp, "port", modeEval}, // oldest entry stays
		{tea.KeyShiftDown, "hosts", modeEval},
		{tea.KeyDown, "", modeEval},
	}

	for i, st := range steps {
		m, _ = m.handleKey(tea.KeyMsg{Type: st.key})
		if m.input.Value() != st.line || m.mode != st.mode {
			t.Errorf("step %d: input = %q mode = %v, want %q mode %v",
				i, m.input.Value(), m.mode, st.line, st.mode)
		}
	}
}

func TestModel_QuitOnEmptyCtrlC(t *testing.T) {
	m := newModel(t.Context(), newTestSession(t, ""), NewHistory(""), log.Logger{})

	m = typeRunes(m, "x")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.quitting || cmd != nil || m.input.Value() != "" {
		t.Fatalf("ctrl-c with input: quitting = %v, input = %q", m.quitting, m.input.Value())
	}

	m, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting || cmd == nil {
		t.Error("ctrl-c on empty line did not quit")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q", m.View())
	}
}
