// Package term hosts forms in an interactive terminal. Every key press runs
// one immediate-mode frame: the key becomes an action for the focused
// control, all templates draw, and the drawn blocks become the view.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DerekForgione/Projector/pkg/form"
	"github.com/DerekForgione/Projector/pkg/surface/palette"
)

// Template is the part of a generation template the host drives.
type Template interface {
	Title() string
	Description() string
	Render(s form.Surface) form.Response
	Generate(ctx context.Context) error
	Reset()
}

// Option configures a Model.
type Option func(*Model)

// WithPalette sets the colours.
func WithPalette(p palette.Palette) Option {
	return func(m *Model) {
		m.styles = newStyles(p)
	}
}

// WithLogger logs generation results.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTitle sets the header line.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithFocusTemplate starts with focus on the first control of the template
// titled title.
func WithFocusTemplate(title string) Option {
	return func(m *Model) {
		m.start = title
	}
}

// Model is the bubbletea model.
type Model struct {
	ctx       context.Context
	templates []Template
	styles    styles
	logger    *slog.Logger
	title     string
	start     string

	focus     int
	focusable int
	spans     []span
	changes   int
	frames    int
	status    string
	body      string
	height    int
}

// span is the range of focus indices a template drew in the last frame.
type span struct{ start, end int }

// New builds a model and draws the first frame.
func New(ctx context.Context, templates []Template, options ...Option) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:       ctx,
		templates: templates,
		styles:    newStyles(palette.Default()),
		logger:    slog.Default(),
		title:     "Projector",
		status:    "tab: next · space: toggle · ←/→: adjust · ctrl+g: generate · ctrl+r: reset · esc: quit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	m.frame(action{})
	if m.start != "" {
		for i, t := range m.templates {
			if t.Title() == m.start && m.spans[i].start < m.focusable {
				m.focus = m.spans[i].start
				m.frame(action{})
				break
			}
		}
	}
	return m
}

// Run starts an alt-screen program until the user quits or ctx ends and
// returns the final model.
func Run(ctx context.Context, templates []Template, options ...Option) (*Model, error) {
	m := New(ctx, templates, options...)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return m, err
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.move(1)
			m.frame(action{})
		case "shift+tab", "up":
			m.move(-1)
			m.frame(action{})
		case " ", "space":
			m.frame(action{kind: actActivate, runes: []rune(" ")})
		case "enter":
			m.frame(action{kind: actActivate, runes: []rune("\n")})
		case "right":
			m.frame(action{kind: actIncrease})
		case "left":
			m.frame(action{kind: actDecrease})
		case "backspace":
			m.frame(action{kind: actDelete})
		case "ctrl+r":
			m.reset()
		case "ctrl+g":
			m.generate()
		default:
			if msg.Type == tea.KeyRunes {
				m.frame(action{kind: actType, runes: msg.Runes})
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	header := m.styles.title.Render(m.title)
	status := m.styles.status.Render(m.status)
	body := m.body
	if m.height > 0 {
		body = crop(body, m.height-4)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", status)
}

// Focus returns the index of the focused control.
func (m *Model) Focus() int { return m.focus }

// Status returns the status line.
func (m *Model) Status() string { return m.status }

// Frames counts the frames drawn so far.
func (m *Model) Frames() int { return m.frames }

// Changes counts the controls the user changed so far.
func (m *Model) Changes() int { return m.changes }

// Selected returns the title of the template holding focus.
func (m *Model) Selected() string {
	if t, ok := m.focused(); ok {
		return t.Title()
	}
	return ""
}

func (m *Model) move(delta int) {
	if m.focusable == 0 {
		m.focus = 0
		return
	}
	m.focus = (m.focus + delta + m.focusable) % m.focusable
}

func (m *Model) frame(act action) {
	f := &frame{styles: m.styles, focus: m.focus, action: act}
	root := &surface{f: f}
	m.spans = m.spans[:0]
	for _, t := range m.templates {
		start := f.next
		root.Heading(t.Title())
		if desc := strings.TrimSpace(t.Description()); desc != "" {
			root.emit(m.styles.muted.Render(desc))
		}
		t.Render(root)
		m.spans = append(m.spans, span{start: start, end: f.next})
	}
	m.focusable = f.next
	if m.focus >= m.focusable && m.focusable > 0 {
		m.focus = m.focusable - 1
	}
	m.changes += f.changed
	m.frames++
	m.body = root.String()
}

func (m *Model) focused() (Template, bool) {
	for i, sp := range m.spans {
		if m.focus >= sp.start && m.focus < sp.end {
			return m.templates[i], true
		}
	}
	return nil, false
}

func (m *Model) reset() {
	t, ok := m.focused()
	if !ok {
		return
	}
	t.Reset()
	m.status = fmt.Sprintf("reset %q", t.Title())
	m.frame(action{})
}

func (m *Model) generate() {
	t, ok := m.focused()
	if !ok {
		return
	}
	if err := t.Generate(m.ctx); err != nil {
		m.logger.ErrorContext(m.ctx, "generate failed", "template", t.Title(), "error", err)
		m.status = fmt.Sprintf("generate %q failed: %v", t.Title(), err)
		return
	}
	m.logger.InfoContext(m.ctx, "generated", "template", t.Title(), "changes", m.changes)
	m.status = fmt.Sprintf("generated %q (%d changes this session)", t.Title(), m.changes)
}

// crop keeps the window of height lines that shows the focused control.
func crop(body string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(body, "\n")
	if len(lines) <= height {
		return body
	}
	at := 0
	for i, line := range lines {
		if strings.Contains(line, focusMarker) {
			at = i
			break
		}
	}
	start := at - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}
