package form

// Response describes the outcome of drawing one control for one frame.
type Response struct {
	// Changed reports whether the bound value was mutated during the frame.
	Changed bool
}

// Union merges two responses; the result is changed if either was.
func (r Response) Union(other Response) Response {
	return Response{Changed: r.Changed || other.Changed}
}

// Surface is the drawing and interaction boundary consumed by the form model.
// Controls are bound to the caller's state through pointers and may mutate it
// while drawing, in the immediate-mode style: there is no retained widget
// tree on the model side.
type Surface interface {
	// Heading draws a section title.
	Heading(text string) Response
	// Label draws plain text.
	Label(text string) Response
	// Warning draws text flagged as an error state.
	Warning(text string) Response
	// Toggle draws an on/off button bound to value.
	Toggle(value *bool, text string) Response
	// Checkbox draws a labelled checkbox bound to checked.
	Checkbox(checked *bool, text string) Response
	SliderInt(value *int64, min, max int64) Response
	SliderUint(value *uint64, min, max uint64) Response
	SliderFloat(value *float64, min, max float64) Response
	// TextEdit draws a single or multi line editor bound to value.
	TextEdit(value *string, multiline bool) Response
	// Combo draws a drop-down bound to selected. Surfaces show placeholder
	// when options is empty and must not write to selected in that case.
	Combo(selected *int, options []string, placeholder string) Response
	// Group draws body inside a visually grouped frame.
	Group(body func(Surface)) Response
	// Scroll draws body inside a vertically scrollable region.
	Scroll(body func(Surface)) Response
	// Columns splits the region into n columns.
	Columns(n int, body func(cols []Surface)) Response
	// PushID scopes widget identity under id so that two fields drawing the
	// same kind of control never collide.
	PushID(id ID, body func(Surface)) Response
}
