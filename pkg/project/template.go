package project

import (
	"context"

	"github.com/DerekForgione/Projector/pkg/form"
)

// Template is a titled form with a generation action.
type Template interface {
	Title() string
	Description() string
	// Render draws the template's form.
	Render(s form.Surface) form.Response
	// Generate produces the template's output from the current form.
	Generate(ctx context.Context) error
	// Reset returns every field to its default.
	Reset()
}

// Example is the bundled demonstration template. Generating it does nothing.
type Example struct {
	form *form.Form
}

var _ Template = (*Example)(nil)

// NewExample builds the example form: a boolean, a signed and an unsigned
// integer starting at zero and a three way choice.
func NewExample() *Example {
	integer := form.Unbounded[int64]()
	integer.Set(0)
	unsigned := form.Unbounded[uint64]()

	return &Example{form: form.New(
		form.NewField("item1", "Boolean", form.NewBoolean(false)),
		form.NewField("item2", "Integer", integer),
		form.NewField("Unsigned", "Unsigned", unsigned),
		form.NewField("item2", "Choices", form.NewChoice("One", "Two", "Three")),
	)}
}

func (*Example) Title() string { return "Example Template" }

func (*Example) Description() string {
	return "This is the description for the Example Template."
}

// Form exposes the example's fields.
func (e *Example) Form() *form.Form { return e.form }

func (e *Example) Render(s form.Surface) form.Response { return e.form.Render(s) }

func (*Example) Generate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Unknown("generate example").Wrap(err)
	}
	return nil
}

func (e *Example) Reset() { e.form.Reset() }
