package project

import (
	"errors"
	"iter"

	"github.com/DerekForgione/Projector/pkg/form"
)

// Registry is the ordered set of templates the host drives. Templates are
// appended and never removed; iteration follows insertion order.
type Registry struct {
	templates []Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends t.
func (r *Registry) Add(t Template) error {
	if t == nil {
		return errors.New("project: template is required")
	}
	r.templates = append(r.templates, t)
	return nil
}

// MustAdd panics when Add fails. Useful for init-time wiring.
func (r *Registry) MustAdd(t Template) {
	if err := r.Add(t); err != nil {
		panic(err)
	}
}

// Templates returns the templates in order. The slice is a copy.
func (r *Registry) Templates() []Template {
	return append([]Template(nil), r.templates...)
}

// All iterates the templates with their position.
func (r *Registry) All() iter.Seq2[int, Template] {
	return func(yield func(int, Template) bool) {
		for i, t := range r.templates {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Len reports the number of templates.
func (r *Registry) Len() int { return len(r.templates) }

// Find returns the first template titled title.
func (r *Registry) Find(title string) (Template, bool) {
	for _, t := range r.templates {
		if t.Title() == title {
			return t, true
		}
	}
	return nil, false
}

// RenderAll draws every template under its heading and description, each
// inside its own identifier scope.
func (r *Registry) RenderAll(s form.Surface) form.Response {
	var resp form.Response
	for i, t := range r.templates {
		s.PushID(form.IDFrom(i), func(inner form.Surface) {
			inner.Heading(t.Title())
			if desc := t.Description(); desc != "" {
				inner.Label(desc)
			}
			resp = resp.Union(t.Render(inner))
		})
	}
	return resp
}
