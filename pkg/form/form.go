package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateID is returned by Form.Add when a field's identifier is already
// used by a sibling.
var ErrDuplicateID = errors.New("form: duplicate field id")

// Field is one named, identified row of a form.
type Field struct {
	label string
	name  string
	id    ID
	value Value
}

// FieldOption customises a field at construction.
type FieldOption func(*Field)

// WithID derives the field identifier from source instead of the default
// time-based source.
func WithID(source any) FieldOption {
	return func(f *Field) {
		f.id = IDFrom(source)
	}
}

// NewField builds a field. name keys generated output, label is displayed.
// A nil value becomes Empty.
func NewField(name, label string, value Value, options ...FieldOption) *Field {
	if value == nil {
		value = NewEmpty()
	}
	f := &Field{
		label: label,
		name:  name,
		id:    NewID(),
		value: value,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Label returns the display label.
func (f *Field) Label() string { return f.label }

// Name returns the structured name.
func (f *Field) Name() string { return f.name }

// ID returns the field identifier.
func (f *Field) ID() ID { return f.id }

// Value returns the owned value.
func (f *Field) Value() Value { return f.value }

// Render draws the field's value.
func (f *Field) Render(s Surface) Response { return f.value.Render(s) }

// Reset resets the field's value.
func (f *Field) Reset() { f.value.Reset() }

// Form is an ordered sequence of fields. Storage order is display order and
// is never re-sorted.
type Form struct {
	fields []*Field
}

// New builds a form from ordered fields. Later fields whose identifier
// repeats an earlier one are re-identified so identifiers stay unique.
func New(fields ...*Field) *Form {
	f := &Form{fields: make([]*Field, 0, len(fields))}
	for _, field := range fields {
		if field == nil {
			continue
		}
		if f.hasID(field.id) {
			field.id = NewID()
		}
		f.fields = append(f.fields, field)
	}
	return f
}

// Add appends field, rejecting identifiers already present.
func (f *Form) Add(field *Field) error {
	if field == nil {
		return errors.New("form: field is required")
	}
	if f.hasID(field.id) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, field.id)
	}
	f.fields = append(f.fields, field)
	return nil
}

// Fields returns the fields in display order. The slice is a copy; the
// fields are shared.
func (f *Form) Fields() []*Field {
	return append([]*Field(nil), f.fields...)
}

// Len reports the number of fields.
func (f *Form) Len() int { return len(f.fields) }

// Field returns the first field named name.
func (f *Form) Field(name string) (*Field, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field, true
		}
	}
	return nil, false
}

// Render lays the fields out as label/control rows inside a grouped,
// scrollable region.
func (f *Form) Render(s Surface) Response {
	var resp Response
	s.Group(func(group Surface) {
		group.Scroll(func(area Surface) {
			area.Columns(2, func(cols []Surface) {
				for _, field := range f.fields {
					cols[0].Label(field.label)
					cols[1].PushID(field.id, func(cell Surface) {
						resp = resp.Union(field.Render(cell))
					})
				}
			})
		})
	})
	return resp
}

// Reset resets every field to its default.
func (f *Form) Reset() {
	for _, field := range f.fields {
		field.Reset()
	}
}

// Values snapshots the form keyed by field name. Structs become nested maps,
// absent optionals nil, choices their selected label and option groups the
// list of checked labels. When names repeat, the later field wins.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		out[field.name] = field.value.snapshot()
	}
	return out
}

// ValidationErrors maps dotted field paths to the reason they failed.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	paths := make([]string, 0, len(v))
	for path := range v {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	parts := make([]string, len(paths))
	for i, path := range paths {
		parts[i] = path + ": " + v[path]
	}
	return "form: invalid fields: " + strings.Join(parts, "; ")
}

// Validate checks every constraint that is not enforced while rendering.
// It returns ValidationErrors or nil.
func (f *Form) Validate() error {
	errs := ValidationErrors{}
	f.validate("", errs)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *Form) validate(prefix string, errs ValidationErrors) {
	for _, field := range f.fields {
		validateValue(prefix+field.name, field.value, errs)
	}
}

func validateValue(path string, value Value, errs ValidationErrors) {
	switch v := value.(type) {
	case *Text:
		if err := v.Validate(); err != nil {
			errs[path] = err.Error()
		}
	case *Struct:
		v.Form.validate(path+".", errs)
	case *OptionalStruct:
		if v.Included {
			v.Form.validate(path+".", errs)
		}
	case *Optional:
		if v.Present {
			validateValue(path, v.Inner, errs)
		}
	case *Empty, *Boolean, *Integer, *Unsigned, *Real, *File, *Choice, *MultiOption:
	}
}

func (f *Form) hasID(id ID) bool {
	for _, field := range f.fields {
		if field.id == id {
			return true
		}
	}
	return false
}
