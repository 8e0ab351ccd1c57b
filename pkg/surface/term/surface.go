package term

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/DerekForgione/Projector/pkg/form"
)

type actionKind int

const (
	actNone actionKind = iota
	actActivate
	actIncrease
	actDecrease
	actType
	actDelete
)

// action is the input applied to the focused control during one frame.
type action struct {
	kind  actionKind
	runes []rune
}

// frame is the state shared by every surface drawn in one pass.
type frame struct {
	styles    styles
	focus     int
	next      int
	action    action
	changed   int
	focusable int
}

func (f *frame) claim() (focused bool, act action) {
	idx := f.next
	f.next++
	if idx != f.focus {
		return false, action{}
	}
	act = f.action
	f.action = action{}
	return true, act
}

// surface collects one rendered block per call.
type surface struct {
	f      *frame
	blocks []string
}

var _ form.Surface = (*surface)(nil)

func (s *surface) child() *surface { return &surface{f: s.f} }

func (s *surface) emit(block string) { s.blocks = append(s.blocks, block) }

func (s *surface) String() string { return lipgloss.JoinVertical(lipgloss.Left, s.blocks...) }

func (s *surface) control(focused bool, text string) {
	if focused {
		s.emit(s.f.styles.focus.Render(focusMarker + " " + text))
		return
	}
	s.emit(s.f.styles.control.Render("  " + text))
}

func (s *surface) respond(changed bool) form.Response {
	if changed {
		s.f.changed++
	}
	return form.Response{Changed: changed}
}

func (s *surface) Heading(text string) form.Response {
	s.emit(s.f.styles.heading.Render(text))
	return form.Response{}
}

func (s *surface) Label(text string) form.Response {
	s.emit(s.f.styles.label.Render(text))
	return form.Response{}
}

func (s *surface) Warning(text string) form.Response {
	s.emit(s.f.styles.warning.Render("⚠ " + text))
	return form.Response{}
}

func (s *surface) Toggle(value *bool, text string) form.Response {
	focused, act := s.f.claim()
	changed := act.kind == actActivate
	if changed {
		*value = !*value
	}
	state := "off"
	if *value {
		state = "on"
	}
	s.control(focused, fmt.Sprintf("[%s] %s", state, text))
	return s.respond(changed)
}

func (s *surface) Checkbox(checked *bool, text string) form.Response {
	focused, act := s.f.claim()
	changed := act.kind == actActivate
	if changed {
		*checked = !*checked
	}
	mark := " "
	if *checked {
		mark = "x"
	}
	s.control(focused, fmt.Sprintf("[%s] %s", mark, text))
	return s.respond(changed)
}

func (s *surface) SliderInt(value *int64, min, max int64) form.Response {
	focused, act := s.f.claim()
	before := *value
	switch act.kind {
	case actIncrease:
		if *value < max {
			*value++
		}
	case actDecrease:
		if *value > min {
			*value--
		}
	case actType, actDelete:
		*value = clampInt(editNumber(strconv.FormatInt(*value, 10), act), min, max, *value)
	}
	s.control(focused, slider(strconv.FormatInt(*value, 10), fraction(float64(*value), float64(min), float64(max))))
	return s.respond(before != *value)
}

func (s *surface) SliderUint(value *uint64, min, max uint64) form.Response {
	focused, act := s.f.claim()
	before := *value
	switch act.kind {
	case actIncrease:
		if *value < max {
			*value++
		}
	case actDecrease:
		if *value > min {
			*value--
		}
	case actType, actDelete:
		if v, err := strconv.ParseUint(editNumber(strconv.FormatUint(*value, 10), act), 10, 64); err == nil {
			*value = min
			if v > min {
				*value = v
			}
			if *value > max {
				*value = max
			}
		}
	}
	s.control(focused, slider(strconv.FormatUint(*value, 10), fraction(float64(*value), float64(min), float64(max))))
	return s.respond(before != *value)
}

func (s *surface) SliderFloat(value *float64, min, max float64) form.Response {
	focused, act := s.f.claim()
	before := *value
	step := (max - min) / 100
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		step = 1
	}
	switch act.kind {
	case actIncrease:
		*value = math.Min(*value+step, max)
	case actDecrease:
		*value = math.Max(*value-step, min)
	}
	text := strconv.FormatFloat(*value, 'g', 6, 64)
	s.control(focused, slider(text, fraction(*value, min, max)))
	return s.respond(before != *value)
}

func (s *surface) TextEdit(value *string, multiline bool) form.Response {
	focused, act := s.f.claim()
	before := *value
	switch act.kind {
	case actType:
		*value += string(act.runes)
	case actActivate:
		if string(act.runes) != "\n" || multiline {
			*value += string(act.runes)
		}
	case actDelete:
		if _, size := utf8.DecodeLastRuneInString(*value); size > 0 {
			*value = (*value)[:len(*value)-size]
		}
	}
	text := *value
	if focused {
		text += "_"
	}
	if !multiline {
		text = "[" + text + "]"
	}
	s.control(focused, text)
	return s.respond(before != *value)
}

func (s *surface) Combo(selected *int, options []string, placeholder string) form.Response {
	focused, act := s.f.claim()
	if len(options) == 0 {
		s.control(focused, "< "+placeholder+" >")
		return form.Response{}
	}
	before := *selected
	switch act.kind {
	case actIncrease, actActivate:
		*selected = (*selected + 1) % len(options)
	case actDecrease:
		*selected = (*selected - 1 + len(options)) % len(options)
	}
	label := ""
	if *selected >= 0 && *selected < len(options) {
		label = options[*selected]
	}
	s.control(focused, fmt.Sprintf("< %s > (%d/%d)", label, *selected+1, len(options)))
	return s.respond(before != *selected)
}

func (s *surface) Group(body func(form.Surface)) form.Response {
	inner := s.child()
	body(inner)
	s.emit(s.f.styles.group.Render(inner.String()))
	return form.Response{}
}

func (s *surface) Scroll(body func(form.Surface)) form.Response {
	inner := s.child()
	body(inner)
	s.emit(inner.String())
	return form.Response{}
}

// Columns lays cells out row by row when every column received the same
// number of blocks, so labels line up with their controls.
func (s *surface) Columns(n int, body func(cols []form.Surface)) form.Response {
	if n < 1 {
		n = 1
	}
	cols := make([]*surface, n)
	args := make([]form.Surface, n)
	for i := range cols {
		cols[i] = s.child()
		args[i] = cols[i]
	}
	body(args)

	rows := len(cols[0].blocks)
	for _, col := range cols[1:] {
		if len(col.blocks) != rows {
			parts := make([]string, n)
			for i, c := range cols {
				parts[i] = c.String()
			}
			s.emit(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
			return form.Response{}
		}
	}

	widths := make([]int, n)
	for i, col := range cols {
		for _, block := range col.blocks {
			widths[i] = max(widths[i], lipgloss.Width(block))
		}
	}
	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		cells := make([]string, n)
		for i, col := range cols {
			cell := col.blocks[r]
			if i < n-1 {
				cell = lipgloss.NewStyle().Width(widths[i]+2).Render(cell)
			}
			cells[i] = cell
		}
		lines[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	s.emit(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return form.Response{}
}

func (s *surface) PushID(_ form.ID, body func(form.Surface)) form.Response {
	inner := s.child()
	body(inner)
	if len(inner.blocks) > 0 {
		s.emit(inner.String())
	}
	return form.Response{}
}

const sliderWidth = 20

func slider(value string, frac float64) string {
	filled := int(math.Round(frac * sliderWidth))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", sliderWidth-filled) + "] " + value
}

func fraction(v, min, max float64) float64 {
	span := max - min
	if span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return 0
	}
	return math.Max(0, math.Min(1, (v-min)/span))
}

// editNumber applies typed digits or a backspace to the decimal text of a
// number.
func editNumber(text string, act action) string {
	switch act.kind {
	case actDelete:
		if len(text) <= 1 || (len(text) == 2 && text[0] == '-') {
			return "0"
		}
		return text[:len(text)-1]
	case actType:
		if text == "0" {
			text = ""
		}
		for _, r := range act.runes {
			if (r == '-' && text == "") || (r >= '0' && r <= '9') {
				text += string(r)
			}
		}
		if text == "" || text == "-" {
			return "0"
		}
	}
	return text
}

func clampInt(text string, min, max, fallback int64) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fallback
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
