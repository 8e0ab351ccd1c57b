package form

// IncludeLabel captions the presence toggle drawn by optional values.
const IncludeLabel = "Include"

// Struct nests a form as a single field value.
type Struct struct {
	Form *Form
}

// NewStruct wraps fields into a nested form value.
func NewStruct(fields ...*Field) *Struct {
	return &Struct{Form: New(fields...)}
}

func (*Struct) Kind() Kind { return KindStruct }

func (s *Struct) Render(surface Surface) Response {
	return s.Form.Render(surface)
}

func (s *Struct) Reset() {
	s.Form.Reset()
}

func (s *Struct) snapshot() any { return s.Form.Values() }

// OptionalStruct nests a form that is present by default but may be omitted.
type OptionalStruct struct {
	Form     *Form
	Included bool
}

// NewOptionalStruct wraps fields into an included, omissible nested form.
func NewOptionalStruct(fields ...*Field) *OptionalStruct {
	return &OptionalStruct{Form: New(fields...), Included: true}
}

func (*OptionalStruct) Kind() Kind { return KindOptionalStruct }

func (o *OptionalStruct) Render(s Surface) Response {
	resp := s.Checkbox(&o.Included, IncludeLabel)
	if o.Included {
		resp = resp.Union(o.Form.Render(s))
	}
	return resp
}

func (o *OptionalStruct) Reset() {
	o.Included = true
	o.Form.Reset()
}

func (o *OptionalStruct) snapshot() any {
	if !o.Included {
		return nil
	}
	return o.Form.Values()
}

// Optional wraps exactly one value that may be absent. It starts absent.
type Optional struct {
	Inner   Value
	Present bool
}

// NewOptional wraps inner as an absent optional value. A nil inner becomes
// Empty so the wrapper always holds a variant.
func NewOptional(inner Value) *Optional {
	if inner == nil {
		inner = NewEmpty()
	}
	return &Optional{Inner: inner}
}

func (*Optional) Kind() Kind { return KindOptional }

func (o *Optional) Render(s Surface) Response {
	resp := s.Checkbox(&o.Present, IncludeLabel)
	if o.Present {
		resp = resp.Union(o.Inner.Render(s))
	}
	return resp
}

func (o *Optional) Reset() {
	o.Present = false
	o.Inner.Reset()
}

func (o *Optional) snapshot() any {
	if !o.Present {
		return nil
	}
	return o.Inner.snapshot()
}
