package term

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DerekForgione/Projector/pkg/form"
)

type stubTemplate struct {
	title     string
	form      *form.Form
	generated int
	resets    int
	err       error
}

func (s *stubTemplate) Title() string       { return s.title }
func (s *stubTemplate) Description() string { return "" }
func (s *stubTemplate) Render(surface form.Surface) form.Response {
	return s.form.Render(surface)
}
func (s *stubTemplate) Generate(context.Context) error {
	s.generated++
	return s.err
}
func (s *stubTemplate) Reset() {
	s.resets++
	s.form.Reset()
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestModel_ToggleAndSlide(t *testing.T) {
	flag := form.NewBoolean(false)
	count := form.NewInteger(0, 10)
	tpl := &stubTemplate{title: "Example", form: form.New(
		form.NewField("flag", "Flag", flag),
		form.NewField("count", "Count", count),
	)}
	m := New(context.Background(), []Template{tpl})

	press(m, key(tea.KeySpace))
	if !flag.Value {
		t.Fatalf("space did not toggle the focused boolean")
	}

	press(m, key(tea.KeyTab), key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyLeft))
	if count.Value() != 2 {
		t.Fatalf("want 2, got %d", count.Value())
	}
	if m.Changes() != 5 {
		t.Fatalf("want 5 changes, got %d", m.Changes())
	}

	view := m.View()
	for _, fragment := range []string{"Example", "Flag", "Count", "[on] Turn Off", focusMarker} {
		if !strings.Contains(view, fragment) {
			t.Fatalf("view missing %q:\n%s", fragment, view)
		}
	}
}

func TestModel_SliderStaysInRange(t *testing.T) {
	count := form.NewUnsigned(0, 2)
	tpl := &stubTemplate{title: "T", form: form.New(form.NewField("n", "N", count))}
	m := New(context.Background(), []Template{tpl})

	press(m, key(tea.KeyLeft), key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyRight))
	if count.Value() != 2 {
		t.Fatalf("want upper bound 2, got %d", count.Value())
	}
	press(m, runes("9"))
	if count.Value() != 2 {
		t.Fatalf("typed value escaped range: %d", count.Value())
	}
}

func TestModel_TextEditing(t *testing.T) {
	text := form.NewText()
	tpl := &stubTemplate{title: "T", form: form.New(form.NewField("name", "Name", text))}
	m := New(context.Background(), []Template{tpl})

	press(m, runes("hé"), key(tea.KeySpace), runes("x"), key(tea.KeyBackspace), key(tea.KeyEnter))
	if text.Value != "hé " {
		t.Fatalf("unexpected text %q", text.Value)
	}
}

func TestModel_ChoiceCycles(t *testing.T) {
	choice := form.NewChoice("One", "Two", "Three")
	tpl := &stubTemplate{title: "T", form: form.New(form.NewField("c", "C", choice))}
	m := New(context.Background(), []Template{tpl})

	press(m, key(tea.KeyLeft))
	if _, label, _ := choice.Selected(); label != "Three" {
		t.Fatalf("want wrap to Three, got %s", label)
	}
	press(m, key(tea.KeyRight))
	if _, label, _ := choice.Selected(); label != "One" {
		t.Fatalf("want One, got %s", label)
	}
}

func TestModel_FocusWraps(t *testing.T) {
	tpl := &stubTemplate{title: "T", form: form.New(
		form.NewField("a", "A", form.NewBoolean(false)),
		form.NewField("b", "B", form.NewBoolean(false)),
		form.NewField("c", "C", form.NewBoolean(false)),
	)}
	m := New(context.Background(), []Template{tpl})

	press(m, key(tea.KeyShiftTab))
	if m.Focus() != 2 {
		t.Fatalf("want focus 2, got %d", m.Focus())
	}
	press(m, key(tea.KeyTab))
	if m.Focus() != 0 {
		t.Fatalf("want focus 0, got %d", m.Focus())
	}
}

func TestModel_TemplateCommandsTargetFocusedTemplate(t *testing.T) {
	first := &stubTemplate{title: "First", form: form.New(form.NewField("a", "A", form.NewBoolean(false)))}
	secondFlag := form.NewBoolean(false)
	second := &stubTemplate{title: "Second", form: form.New(form.NewField("b", "B", secondFlag))}
	m := New(context.Background(), []Template{first, second})

	press(m, key(tea.KeyTab), key(tea.KeySpace))
	if !secondFlag.Value {
		t.Fatalf("second template flag not toggled")
	}

	press(m, key(tea.KeyCtrlG))
	if first.generated != 0 || second.generated != 1 {
		t.Fatalf("generate hit wrong template: first=%d second=%d", first.generated, second.generated)
	}
	if !strings.Contains(m.Status(), `generated "Second"`) {
		t.Fatalf("unexpected status %q", m.Status())
	}

	press(m, key(tea.KeyCtrlR))
	if second.resets != 1 || secondFlag.Value {
		t.Fatalf("reset not applied to focused template")
	}
}

func TestModel_GenerateFailureShowsStatus(t *testing.T) {
	tpl := &stubTemplate{
		title: "T",
		form:  form.New(form.NewField("a", "A", form.NewBoolean(false))),
		err:   errors.New("disk full"),
	}
	m := New(context.Background(), []Template{tpl})

	press(m, key(tea.KeyCtrlG))
	if !strings.Contains(m.Status(), "disk full") {
		t.Fatalf("status missing error: %q", m.Status())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := New(context.Background(), nil)
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("%v: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%v: expected QuitMsg", k)
		}
	}
}

func TestCrop_KeepsFocusVisible(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	lines[40] = focusMarker + " here"
	got := crop(strings.Join(lines, "\n"), 10)
	if !strings.Contains(got, focusMarker) {
		t.Fatalf("focused line cropped away")
	}
	if n := len(strings.Split(got, "\n")); n != 10 {
		t.Fatalf("want 10 lines, got %d", n)
	}
}

func TestModel_FocusTemplateRestoresSelection(t *testing.T) {
	first := &stubTemplate{title: "First", form: form.New(form.NewField("a", "A", form.NewBoolean(false)))}
	second := &stubTemplate{title: "Second", form: form.New(form.NewField("b", "B", form.NewBoolean(false)))}

	m := New(context.Background(), []Template{first, second})
	if m.Selected() != "First" {
		t.Fatalf("want First selected, got %q", m.Selected())
	}

	m = New(context.Background(), []Template{first, second}, WithFocusTemplate("Second"))
	if m.Selected() != "Second" || m.Focus() != 1 {
		t.Fatalf("focus not restored: %q at %d", m.Selected(), m.Focus())
	}

	m = New(context.Background(), []Template{first, second}, WithFocusTemplate("Missing"))
	if m.Selected() != "First" {
		t.Fatalf("unknown title should keep the default focus, got %q", m.Selected())
	}
}
