package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// YesNo asks for a toggle or checkbox.
type YesNo struct {
	Message string
	Help    string
	Default bool
}

// Number asks for a slider value. Check parses a raw answer and rejects
// anything outside [Min, Max]; drivers only return answers it accepts.
type Number struct {
	Message string
	Default string
	Min     string
	Max     string
	Check   func(raw string) error
}

// Text asks for a single or multi-line string.
type Text struct {
	Message   string
	Default   string
	Multiline bool
}

// Choice asks for one of Options. Default is an index into Options.
type Choice struct {
	Message  string
	Options  []string
	Default  int
	PageSize int
}

// Driver asks the questions a Surface derives from a frame.
type Driver interface {
	YesNo(ctx context.Context, q YesNo) (bool, error)
	Number(ctx context.Context, q Number) (string, error)
	Text(ctx context.Context, q Text) (string, error)
	Choose(ctx context.Context, q Choice) (int, error)
	Note(ctx context.Context, line string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns the terminal driver. opts are passed to every
// survey prompt.
func NewSurveyDriver(opts ...survey.AskOpt) Driver {
	return &surveyDriver{out: os.Stdout, opts: opts}
}

func (d *surveyDriver) ask(ctx context.Context, p survey.Prompt, answer any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(p, answer, append(opts, d.opts...)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) YesNo(ctx context.Context, q YesNo) (bool, error) {
	var out bool
	err := d.ask(ctx, &survey.Confirm{Message: q.Message, Help: q.Help, Default: q.Default}, &out)
	return out, err
}

func (d *surveyDriver) Number(ctx context.Context, q Number) (string, error) {
	var out string
	p := &survey.Input{
		Message: q.Message,
		Default: q.Default,
		Help:    fmt.Sprintf("a number from %s to %s", q.Min, q.Max),
	}
	validate := survey.Required
	if q.Check != nil {
		validate = survey.ComposeValidators(survey.Required, func(ans any) error {
			return q.Check(fmt.Sprint(ans))
		})
	}
	err := d.ask(ctx, p, &out, survey.WithValidator(validate))
	return out, err
}

func (d *surveyDriver) Text(ctx context.Context, q Text) (string, error) {
	var (
		out string
		p   survey.Prompt = &survey.Input{Message: q.Message, Default: q.Default}
	)
	if q.Multiline {
		p = &survey.Multiline{Message: q.Message, Default: q.Default}
	}
	err := d.ask(ctx, p, &out)
	return out, err
}

func (d *surveyDriver) Choose(ctx context.Context, q Choice) (int, error) {
	p := &survey.Select{Message: q.Message, Options: q.Options, PageSize: q.PageSize}
	if q.Default >= 0 && q.Default < len(q.Options) {
		p.Default = q.Default
	}
	// survey writes the selected index when the answer is an int.
	var out int
	if err := d.ask(ctx, p, &out); err != nil {
		return -1, err
	}
	return out, nil
}

func (d *surveyDriver) Note(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, line)
	return err
}
