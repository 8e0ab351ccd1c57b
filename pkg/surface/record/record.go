// Package record implements a headless form.Surface. Each frame is captured
// as a Node tree and scripted inputs, keyed by widget path, are applied to
// the bound values while the frame draws. Tests use it to simulate user
// interaction; the HTML surface uses it to snapshot a frame.
package record

import (
	"fmt"
	"strings"

	"github.com/DerekForgione/Projector/pkg/form"
)

// Widget names the kind of control a Node records.
type Widget string

const (
	WidgetFrame    Widget = "frame"
	WidgetHeading  Widget = "heading"
	WidgetLabel    Widget = "label"
	WidgetWarning  Widget = "warning"
	WidgetToggle   Widget = "toggle"
	WidgetCheckbox Widget = "checkbox"
	WidgetSlider   Widget = "slider"
	WidgetText     Widget = "text"
	WidgetCombo    Widget = "combo"
	WidgetGroup    Widget = "group"
	WidgetScroll   Widget = "scroll"
	WidgetColumns  Widget = "columns"
	WidgetColumn   Widget = "column"
	WidgetScope    Widget = "scope"
)

// Node is one recorded control or layout region.
type Node struct {
	Widget    Widget
	Path      string
	Text      string
	Value     any
	Min       any
	Max       any
	Options   []string
	Multiline bool
	Changed   bool
	Children  []*Node
}

// Key builds the path of the n-th widget of kind w drawn directly inside the
// nested scopes pushed for ids, outermost first. No ids addresses the frame
// root.
func Key(w Widget, n int, ids ...form.ID) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteByte('/')
		b.WriteString(string(id))
	}
	return fmt.Sprintf("%s/%s#%d", b.String(), w, n)
}

// Recorder captures frames and replays scripted inputs.
type Recorder struct {
	inputs map[string]any
	counts map[string]int
	last   *Node
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{inputs: make(map[string]any)}
}

// Set scripts value for the widget at key. The input is consumed by the next
// frame that draws that widget. Accepted types: bool for toggles and
// checkboxes, int64/uint64/float64 (or int) for sliders, string for text and
// int for combos.
func (r *Recorder) Set(key string, value any) *Recorder {
	r.inputs[key] = value
	return r
}

// Pending reports the scripted inputs that no frame has consumed yet.
func (r *Recorder) Pending() []string {
	out := make([]string, 0, len(r.inputs))
	for key := range r.inputs {
		out = append(out, key)
	}
	return out
}

// Frame runs draw against a fresh root node and returns it.
func (r *Recorder) Frame(draw func(form.Surface)) *Node {
	root := &Node{Widget: WidgetFrame}
	r.counts = make(map[string]int)
	draw(&surface{rec: r, parent: root})
	r.last = root
	return root
}

// Last returns the most recent frame, or nil.
func (r *Recorder) Last() *Node { return r.last }

type surface struct {
	rec    *Recorder
	parent *Node
	scope  string
}

var _ form.Surface = (*surface)(nil)

func (s *surface) add(w Widget) *Node {
	counter := s.scope + "/" + string(w)
	n := s.rec.counts[counter]
	s.rec.counts[counter] = n + 1
	node := &Node{Widget: w, Path: fmt.Sprintf("%s/%s#%d", s.scope, w, n)}
	s.parent.Children = append(s.parent.Children, node)
	return node
}

func (s *surface) input(node *Node) (any, bool) {
	v, ok := s.rec.inputs[node.Path]
	if ok {
		delete(s.rec.inputs, node.Path)
	}
	return v, ok
}

func (s *surface) child(node *Node, scope string) *surface {
	return &surface{rec: s.rec, parent: node, scope: scope}
}

func (s *surface) Heading(text string) form.Response {
	s.add(WidgetHeading).Text = text
	return form.Response{}
}

func (s *surface) Label(text string) form.Response {
	s.add(WidgetLabel).Text = text
	return form.Response{}
}

func (s *surface) Warning(text string) form.Response {
	s.add(WidgetWarning).Text = text
	return form.Response{}
}

func (s *surface) Toggle(value *bool, text string) form.Response {
	return s.boolean(WidgetToggle, value, text)
}

func (s *surface) Checkbox(checked *bool, text string) form.Response {
	return s.boolean(WidgetCheckbox, checked, text)
}

func (s *surface) boolean(w Widget, value *bool, text string) form.Response {
	node := s.add(w)
	node.Text = text
	if in, ok := s.input(node); ok {
		if b, ok := in.(bool); ok && b != *value {
			*value = b
			node.Changed = true
		}
	}
	node.Value = *value
	return form.Response{Changed: node.Changed}
}

func (s *surface) SliderInt(value *int64, min, max int64) form.Response {
	node := s.add(WidgetSlider)
	node.Min, node.Max = min, max
	if in, ok := s.input(node); ok {
		var v int64
		switch t := in.(type) {
		case int64:
			v = t
		case int:
			v = int64(t)
		default:
			v = *value
		}
		node.Changed = v != *value
		*value = v
	}
	node.Value = *value
	return form.Response{Changed: node.Changed}
}

func (s *surface) SliderUint(value *uint64, min, max uint64) form.Response {
	node := s.add(WidgetSlider)
	node.Min, node.Max = min, max
	if in, ok := s.input(node); ok {
		var v uint64
		switch t := in.(type) {
		case uint64:
			v = t
		case int:
			if t >= 0 {
				v = uint64(t)
			}
		default:
			v = *value
		}
		node.Changed = v != *value
		*value = v
	}
	node.Value = *value
	return form.Response{Changed: node.Changed}
}

func (s *surface) SliderFloat(value *float64, min, max float64) form.Response {
	node := s.add(WidgetSlider)
	node.Min, node.Max = min, max
	if in, ok := s.input(node); ok {
		var v float64
		switch t := in.(type) {
		case float64:
			v = t
		case int:
			v = float64(t)
		default:
			v = *value
		}
		node.Changed = v != *value
		*value = v
	}
	node.Value = *value
	return form.Response{Changed: node.Changed}
}

func (s *surface) TextEdit(value *string, multiline bool) form.Response {
	node := s.add(WidgetText)
	node.Multiline = multiline
	if in, ok := s.input(node); ok {
		if str, ok := in.(string); ok && str != *value {
			*value = str
			node.Changed = true
		}
	}
	node.Value = *value
	return form.Response{Changed: node.Changed}
}

func (s *surface) Combo(selected *int, options []string, placeholder string) form.Response {
	node := s.add(WidgetCombo)
	node.Options = append([]string(nil), options...)
	if len(options) == 0 {
		node.Text = placeholder
		return form.Response{}
	}
	if in, ok := s.input(node); ok {
		if idx, ok := in.(int); ok && idx >= 0 && idx < len(options) && idx != *selected {
			*selected = idx
			node.Changed = true
		}
	}
	node.Value = *selected
	if *selected >= 0 && *selected < len(options) {
		node.Text = options[*selected]
	}
	return form.Response{Changed: node.Changed}
}

func (s *surface) Group(body func(form.Surface)) form.Response {
	node := s.add(WidgetGroup)
	body(s.child(node, s.scope))
	return form.Response{}
}

func (s *surface) Scroll(body func(form.Surface)) form.Response {
	node := s.add(WidgetScroll)
	body(s.child(node, s.scope))
	return form.Response{}
}

func (s *surface) Columns(n int, body func(cols []form.Surface)) form.Response {
	node := s.add(WidgetColumns)
	if n < 1 {
		n = 1
	}
	cols := make([]form.Surface, n)
	for i := range cols {
		col := &Node{Widget: WidgetColumn, Path: fmt.Sprintf("%s/column#%d", node.Path, i)}
		node.Children = append(node.Children, col)
		cols[i] = s.child(col, s.scope)
	}
	body(cols)
	return form.Response{}
}

func (s *surface) PushID(id form.ID, body func(form.Surface)) form.Response {
	node := s.add(WidgetScope)
	scope := s.scope + "/" + string(id)
	node.Path = scope
	body(s.child(node, scope))
	return form.Response{}
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node whose path equals path.
func (n *Node) Find(path string) *Node {
	var found *Node
	n.Walk(func(node *Node) {
		if found == nil && node.Path == path {
			found = node
		}
	})
	return found
}

// Collect returns the nodes of kind w in draw order.
func (n *Node) Collect(w Widget) []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if node.Widget == w {
			out = append(out, node)
		}
	})
	return out
}

// Texts returns the Text of every node of kind w in draw order.
func (n *Node) Texts(w Widget) []string {
	nodes := n.Collect(w)
	out := make([]string, len(nodes))
	for i, node := range nodes {
		out[i] = node.Text
	}
	return out
}

// String renders the tree as an indented outline, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%s", strings.Repeat("  ", depth), n.Widget)
	if n.Text != "" {
		fmt.Fprintf(b, " %q", n.Text)
	}
	if n.Value != nil {
		fmt.Fprintf(b, " = %v", n.Value)
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.write(b, depth+1)
	}
}
