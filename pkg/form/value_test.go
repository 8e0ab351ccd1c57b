package form_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DerekForgione/Projector/pkg/form"
	"github.com/DerekForgione/Projector/pkg/surface/record"
)

func TestScalar_StartsAtLowerBound(t *testing.T) {
	if got := form.NewInteger(-5, 5).Value(); got != -5 {
		t.Fatalf("integer: want -5, got %d", got)
	}
	if got := form.NewUnsigned(3, 9).Value(); got != 3 {
		t.Fatalf("unsigned: want 3, got %d", got)
	}
	if got := form.NewReal(0.5, 1.5).Value(); got != 0.5 {
		t.Fatalf("real: want 0.5, got %v", got)
	}
	if got := form.Unbounded[int64]().Value(); got != math.MinInt64 {
		t.Fatalf("unbounded integer: want MinInt64, got %d", got)
	}
	if got := form.Unbounded[uint64]().Value(); got != 0 {
		t.Fatalf("unbounded unsigned: want 0, got %d", got)
	}
	if got := form.Unbounded[float64]().Value(); got != -math.MaxFloat64 {
		t.Fatalf("unbounded real: want -MaxFloat64, got %v", got)
	}
}

func TestScalar_InvertedBoundsAreSwapped(t *testing.T) {
	s := form.NewInteger(10, 0)
	min, max := s.Range()
	if min != 0 || max != 10 || s.Value() != 0 {
		t.Fatalf("want [0,10] at 0, got [%d,%d] at %d", min, max, s.Value())
	}
}

func TestScalar_RenderKeepsValueInRange(t *testing.T) {
	field := form.NewField("count", "Count", form.NewInteger(0, 10))
	f := form.New(field)
	rec := record.New()
	key := record.Key(record.WidgetSlider, 0, field.ID())

	inputs := []int64{7, 11, -3, math.MaxInt64, 10, 0}
	for _, in := range inputs {
		rec.Set(key, in)
		rec.Frame(func(s form.Surface) { f.Render(s) })
		got := field.Value().(*form.Integer).Value()
		if got < 0 || got > 10 {
			t.Fatalf("input %d left value out of range: %d", in, got)
		}
	}
}

func TestScalar_RenderReportsClampedWrites(t *testing.T) {
	field := form.NewField("count", "Count", form.NewInteger(0, 10))
	field.Value().(*form.Integer).Set(10)
	f := form.New(field)
	rec := record.New()
	key := record.Key(record.WidgetSlider, 0, field.ID())

	cases := []struct {
		in      int64
		want    int64
		changed bool
	}{
		{in: 99, want: 10, changed: false},
		{in: 4, want: 4, changed: true},
		{in: -8, want: 0, changed: true},
		{in: -1, want: 0, changed: false},
	}
	for _, tc := range cases {
		rec.Set(key, tc.in)
		var resp form.Response
		rec.Frame(func(s form.Surface) { resp = f.Render(s) })
		got := field.Value().(*form.Integer).Value()
		if got != tc.want || resp.Changed != tc.changed {
			t.Fatalf("input %d: want value=%d changed=%v, got value=%d changed=%v",
				tc.in, tc.want, tc.changed, got, resp.Changed)
		}
	}
}

func TestScalar_SetClamps(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "below", in: -1, want: 0},
		{name: "inside", in: 0.25, want: 0.25},
		{name: "above", in: 2, want: 1},
		{name: "nan", in: math.NaN(), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := form.NewReal(0, 1)
			if got := s.Set(tc.in); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScalar_Kind(t *testing.T) {
	if k := form.NewInteger(0, 1).Kind(); k != form.KindInteger {
		t.Fatalf("integer kind: %s", k)
	}
	if k := form.NewUnsigned(0, 1).Kind(); k != form.KindUnsigned {
		t.Fatalf("unsigned kind: %s", k)
	}
	if k := form.NewReal(0, 1).Kind(); k != form.KindReal {
		t.Fatalf("real kind: %s", k)
	}
}

func TestBoolean_ResetAlwaysFalse(t *testing.T) {
	for _, initial := range []bool{true, false} {
		b := form.NewBoolean(initial)
		b.Reset()
		if b.Value {
			t.Fatalf("reset from %v: want false", initial)
		}
	}
}

func TestBoolean_RenderCaption(t *testing.T) {
	b := form.NewBoolean(false)
	frame := record.New().Frame(func(s form.Surface) { b.Render(s) })
	if diff := cmp.Diff([]string{"Turn On"}, frame.Texts(record.WidgetToggle)); diff != "" {
		t.Fatalf("caption mismatch (-want +got):\n%s", diff)
	}
}

func TestChoice_SelectAndReset(t *testing.T) {
	field := form.NewField("pick", "Pick", form.NewChoice("One", "Two", "Three"))
	choice := field.Value().(*form.Choice)

	assertSelected(t, choice, 0, "One")

	rec := record.New()
	rec.Set(record.Key(record.WidgetCombo, 0, field.ID()), 2)
	rec.Frame(func(s form.Surface) { form.New(field).Render(s) })
	assertSelected(t, choice, 2, "Three")

	choice.Reset()
	assertSelected(t, choice, 0, "One")
}

func TestChoice_EmptyRendersSentinel(t *testing.T) {
	choice := form.NewChoice()
	if _, _, ok := choice.Selected(); ok {
		t.Fatalf("expected no selection for empty choice")
	}

	frame := record.New().Frame(func(s form.Surface) { choice.Render(s) })
	if diff := cmp.Diff([]string{form.NoChoiceLabel}, frame.Texts(record.WidgetWarning)); diff != "" {
		t.Fatalf("sentinel mismatch (-want +got):\n%s", diff)
	}
	if len(frame.Collect(record.WidgetCombo)) != 0 {
		t.Fatalf("empty choice must not draw a combo")
	}

	choice.Reset()
	if _, _, ok := choice.Selected(); ok {
		t.Fatalf("reset must not create a selection")
	}
	if choice.Select(0) {
		t.Fatalf("select on empty choice must fail")
	}
}

func TestChoice_SelectRejectsOutOfRange(t *testing.T) {
	choice := form.NewChoice("a", "b")
	if choice.Select(2) || choice.Select(-1) {
		t.Fatalf("out of range selection accepted")
	}
	assertSelected(t, choice, 0, "a")
}

func TestMultiOption_ResetClearsAndKeepsOrder(t *testing.T) {
	m := form.NewMultiOption("red", "green", "blue")
	m.Options[0].Checked = true
	m.Options[2].Checked = true

	m.Reset()

	want := []form.Option{{Label: "red"}, {Label: "green"}, {Label: "blue"}}
	if diff := cmp.Diff(want, m.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiOption_RenderCheckboxes(t *testing.T) {
	m := form.NewMultiOption("a", "b")
	rec := record.New()
	rec.Set(record.Key(record.WidgetCheckbox, 1), true)
	frame := rec.Frame(func(s form.Surface) { m.Render(s) })

	if diff := cmp.Diff([]string{"a", "b"}, frame.Texts(record.WidgetCheckbox)); diff != "" {
		t.Fatalf("checkbox labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, m.Checked()); diff != "" {
		t.Fatalf("checked mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiOption_EmptyWarns(t *testing.T) {
	frame := record.New().Frame(func(s form.Surface) { form.NewMultiOption().Render(s) })
	if diff := cmp.Diff([]string{form.NoOptionsLabel}, frame.Texts(record.WidgetWarning)); diff != "" {
		t.Fatalf("warning mismatch (-want +got):\n%s", diff)
	}
	if len(frame.Collect(record.WidgetGroup)) != 0 {
		t.Fatalf("empty option set must not draw a group")
	}
}

func TestEmpty_RendersWarning(t *testing.T) {
	frame := record.New().Frame(func(s form.Surface) { form.NewEmpty().Render(s) })
	if diff := cmp.Diff([]string{"Empty"}, frame.Texts(record.WidgetWarning)); diff != "" {
		t.Fatalf("warning mismatch (-want +got):\n%s", diff)
	}
}

func TestTextAndFile_Reset(t *testing.T) {
	text := form.NewMultiline()
	text.Value = "hello"
	text.Reset()
	if text.Value != "" || !text.Multiline {
		t.Fatalf("text reset: got %q multiline=%v", text.Value, text.Multiline)
	}

	file := form.NewFile("/tmp/out")
	file.Reset()
	if file.Path != "" {
		t.Fatalf("file reset: got %q", file.Path)
	}
}

func TestText_Validate(t *testing.T) {
	text := form.NewText().WithLength(2, 4)
	cases := map[string]bool{
		"":      false,
		"a":     false,
		"ab":    true,
		"héé":   true,
		"abcd":  true,
		"abcde": false,
	}
	for in, ok := range cases {
		text.Value = in
		if err := text.Validate(); (err == nil) != ok {
			t.Fatalf("validate %q: want ok=%v, got %v", in, ok, err)
		}
	}
}

func TestOptional_PresenceAndReset(t *testing.T) {
	inner := form.NewBoolean(false)
	opt := form.NewOptional(inner)
	rec := record.New()

	frame := rec.Frame(func(s form.Surface) { opt.Render(s) })
	if len(frame.Collect(record.WidgetToggle)) != 0 {
		t.Fatalf("absent optional must not draw its inner value")
	}

	rec.Set(record.Key(record.WidgetCheckbox, 0), true)
	rec.Set(record.Key(record.WidgetToggle, 0), true)
	rec.Frame(func(s form.Surface) { opt.Render(s) })
	if !opt.Present || !inner.Value {
		t.Fatalf("expected present optional with inner true, got present=%v inner=%v", opt.Present, inner.Value)
	}

	opt.Reset()
	if opt.Present || inner.Value {
		t.Fatalf("reset: want absent and inner false")
	}
}

func TestStruct_ForwardsRenderAndReset(t *testing.T) {
	flag := form.NewField("flag", "Flag", form.NewBoolean(true))
	nested := form.NewStruct(flag)
	outer := form.NewField("nested", "Nested", nested)
	f := form.New(outer)

	frame := record.New().Frame(func(s form.Surface) { f.Render(s) })
	if diff := cmp.Diff([]string{"Nested", "Flag"}, frame.Texts(record.WidgetLabel)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	node := frame.Find(record.Key(record.WidgetToggle, 0, outer.ID(), flag.ID()))
	if node == nil {
		t.Fatalf("nested toggle not found under scoped path:\n%s", frame)
	}

	nested.Reset()
	if flag.Value().(*form.Boolean).Value {
		t.Fatalf("struct reset did not reach nested field")
	}
}

func TestOptionalStruct_DefaultIncluded(t *testing.T) {
	os := form.NewOptionalStruct(form.NewField("a", "A", form.NewText()))
	os.Included = false
	os.Reset()
	if !os.Included {
		t.Fatalf("optional struct reset must restore inclusion")
	}
}

func TestKind_RoundTripNames(t *testing.T) {
	for k := form.KindEmpty; k <= form.KindOptional; k++ {
		got, ok := form.ParseKind(k.String())
		if !ok || got != k {
			t.Fatalf("kind %d: parse %q gave %d ok=%v", k, k.String(), got, ok)
		}
	}
	if _, ok := form.ParseKind("nope"); ok {
		t.Fatalf("unknown kind parsed")
	}
}

func assertSelected(t *testing.T, c *form.Choice, wantIdx int, wantLabel string) {
	t.Helper()
	idx, label, ok := c.Selected()
	if !ok || idx != wantIdx || label != wantLabel {
		t.Fatalf("selected: want (%d, %q), got (%d, %q, ok=%v)", wantIdx, wantLabel, idx, label, ok)
	}
}
