package form

// NoChoiceLabel is shown in place of a drop-down when a Choice has no options.
const NoChoiceLabel = "<no choice available>"

// NoOptionsLabel is shown in place of a checkbox group with no entries.
const NoOptionsLabel = "No options!"

// Choice selects exactly one entry of an ordered option list. An empty list
// has no selection.
type Choice struct {
	selected int
	options  []string
}

// NewChoice returns a Choice over options with the first entry selected.
func NewChoice(options ...string) *Choice {
	return &Choice{options: append([]string(nil), options...)}
}

// Options returns a copy of the option labels.
func (c *Choice) Options() []string {
	return append([]string(nil), c.options...)
}

// Selected returns the selected index and label. ok is false when the option
// list is empty.
func (c *Choice) Selected() (index int, label string, ok bool) {
	if len(c.options) == 0 {
		return 0, "", false
	}
	return c.selected, c.options[c.selected], true
}

// Select moves the selection to index. Out of range indices are ignored and
// reported as false.
func (c *Choice) Select(index int) bool {
	if index < 0 || index >= len(c.options) {
		return false
	}
	c.selected = index
	return true
}

func (*Choice) Kind() Kind { return KindChoice }

func (c *Choice) Render(s Surface) Response {
	if len(c.options) == 0 {
		return s.Warning(NoChoiceLabel)
	}
	selected := c.selected
	resp := s.Combo(&selected, c.options, NoChoiceLabel)
	if !c.Select(selected) {
		resp.Changed = false
	}
	return resp
}

func (c *Choice) Reset() {
	c.selected = 0
}

func (c *Choice) snapshot() any {
	if _, label, ok := c.Selected(); ok {
		return label
	}
	return nil
}

// Option is one labelled checkbox of a MultiOption.
type Option struct {
	Label   string
	Checked bool
}

// MultiOption is an ordered checkbox group.
type MultiOption struct {
	Options []Option
}

// NewMultiOption returns a MultiOption with every label unchecked.
func NewMultiOption(labels ...string) *MultiOption {
	opts := make([]Option, len(labels))
	for i, label := range labels {
		opts[i] = Option{Label: label}
	}
	return &MultiOption{Options: opts}
}

// Checked returns the labels of the checked entries in order.
func (m *MultiOption) Checked() []string {
	var out []string
	for _, opt := range m.Options {
		if opt.Checked {
			out = append(out, opt.Label)
		}
	}
	return out
}

func (*MultiOption) Kind() Kind { return KindMultiOption }

func (m *MultiOption) Render(s Surface) Response {
	if len(m.Options) == 0 {
		return s.Warning(NoOptionsLabel)
	}
	var resp Response
	s.Group(func(g Surface) {
		for i := range m.Options {
			resp = resp.Union(g.Checkbox(&m.Options[i].Checked, m.Options[i].Label))
		}
	})
	return resp
}

func (m *MultiOption) Reset() {
	for i := range m.Options {
		m.Options[i].Checked = false
	}
}

func (m *MultiOption) snapshot() any {
	checked := m.Checked()
	out := make([]any, len(checked))
	for i, label := range checked {
		out[i] = label
	}
	return out
}
