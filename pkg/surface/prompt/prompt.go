// Package prompt implements form.Surface as a sequence of terminal prompts.
// One frame walks the form top to bottom and asks one question per control;
// the label drawn before a control becomes its prompt message.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DerekForgione/Projector/pkg/form"
)

// Surface asks a prompt for every control it is handed. After the first
// driver error every further call is a no-op; read it with Err.
type Surface struct {
	ctx      context.Context
	driver   Driver
	theme    Theme
	pageSize int

	pending string
	err     error
}

var _ form.Surface = (*Surface)(nil)

// New builds a Surface bound to ctx. The survey driver is used unless
// WithDriver overrides it.
func New(ctx context.Context, options ...Option) *Surface {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Surface{
		ctx:    ctx,
		driver: NewSurveyDriver(),
		theme:  DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run draws one full pass and returns the first error.
func (s *Surface) Run(draw func(form.Surface)) error {
	s.err = nil
	s.pending = ""
	draw(s)
	return s.err
}

// Err reports the first driver error of the current pass.
func (s *Surface) Err() error { return s.err }

func (s *Surface) fail(err error) form.Response {
	if s.err == nil {
		s.err = err
	}
	return form.Response{}
}

// message consumes the pending label.
func (s *Surface) message(caption string) string {
	msg := s.pending
	s.pending = ""
	switch {
	case msg == "":
		return caption
	case caption == "":
		return msg
	default:
		return msg + " (" + caption + ")"
	}
}

func (s *Surface) info(prefix, text string) form.Response {
	if s.err != nil {
		return form.Response{}
	}
	line := strings.TrimSpace(prefix + " " + text)
	if err := s.driver.Note(s.ctx, line); err != nil {
		return s.fail(err)
	}
	return form.Response{}
}

func (s *Surface) Heading(text string) form.Response {
	return s.info(s.theme.HeadingPrefix, text)
}

func (s *Surface) Label(text string) form.Response {
	s.pending = text
	return form.Response{}
}

func (s *Surface) Warning(text string) form.Response {
	msg := s.message("")
	if msg != "" {
		text = msg + ": " + text
	}
	return s.info(s.theme.WarningPrefix, text)
}

func (s *Surface) Toggle(value *bool, text string) form.Response {
	return s.confirm(value, s.message(""), text)
}

func (s *Surface) Checkbox(checked *bool, text string) form.Response {
	return s.confirm(checked, s.message(text), "")
}

func (s *Surface) confirm(value *bool, msg, help string) form.Response {
	if s.err != nil {
		return form.Response{}
	}
	answer, err := s.driver.YesNo(s.ctx, YesNo{
		Message: msg,
		Default: *value,
		Help:    help,
	})
	if err != nil {
		return s.fail(err)
	}
	changed := answer != *value
	*value = answer
	return form.Response{Changed: changed}
}

func (s *Surface) SliderInt(value *int64, min, max int64) form.Response {
	return askNumber(s, value, min, max, func(raw string) (int64, error) {
		return strconv.ParseInt(raw, 10, 64)
	})
}

func (s *Surface) SliderUint(value *uint64, min, max uint64) form.Response {
	return askNumber(s, value, min, max, func(raw string) (uint64, error) {
		return strconv.ParseUint(raw, 10, 64)
	})
}

func (s *Surface) SliderFloat(value *float64, min, max float64) form.Response {
	return askNumber(s, value, min, max, func(raw string) (float64, error) {
		return strconv.ParseFloat(raw, 64)
	})
}

func askNumber[T form.Number](s *Surface, value *T, min, max T, parse func(string) (T, error)) form.Response {
	msg := s.message("")
	if s.err != nil {
		return form.Response{}
	}
	check := func(raw string) error {
		v, err := parse(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrNotANumber, raw)
		}
		if v < min || v > max {
			return fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRange, v, min, max)
		}
		return nil
	}
	raw, err := s.driver.Number(s.ctx, Number{
		Message: msg,
		Default: fmt.Sprint(*value),
		Min:     fmt.Sprint(min),
		Max:     fmt.Sprint(max),
		Check:   check,
	})
	if err != nil {
		return s.fail(err)
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return s.fail(fmt.Errorf("%w: %q", ErrNotANumber, raw))
	}
	changed := v != *value
	*value = v
	return form.Response{Changed: changed}
}

func (s *Surface) TextEdit(value *string, multiline bool) form.Response {
	msg := s.message("")
	if s.err != nil {
		return form.Response{}
	}
	answer, err := s.driver.Text(s.ctx, Text{Message: msg, Default: *value, Multiline: multiline})
	if err != nil {
		return s.fail(err)
	}
	changed := answer != *value
	*value = answer
	return form.Response{Changed: changed}
}

func (s *Surface) Combo(selected *int, options []string, placeholder string) form.Response {
	msg := s.message("")
	if s.err != nil {
		return form.Response{}
	}
	if len(options) == 0 {
		return s.info(s.theme.WarningPrefix, placeholder)
	}
	idx, err := s.driver.Choose(s.ctx, Choice{
		Message:  msg,
		Options:  options,
		Default:  *selected,
		PageSize: s.pageSize,
	})
	if err != nil {
		return s.fail(err)
	}
	if idx < 0 || idx >= len(options) || idx == *selected {
		return form.Response{}
	}
	*selected = idx
	return form.Response{Changed: true}
}

func (s *Surface) Group(body func(form.Surface)) form.Response {
	body(s)
	return form.Response{}
}

func (s *Surface) Scroll(body func(form.Surface)) form.Response {
	body(s)
	return form.Response{}
}

// Columns hands every column the same surface; labels and controls arrive
// interleaved in field order.
func (s *Surface) Columns(n int, body func(cols []form.Surface)) form.Response {
	if n < 1 {
		n = 1
	}
	cols := make([]form.Surface, n)
	for i := range cols {
		cols[i] = s
	}
	body(cols)
	return form.Response{}
}

func (s *Surface) PushID(_ form.ID, body func(form.Surface)) form.Response {
	body(s)
	return form.Response{}
}
