package form

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Text is a string value with an inclusive length constraint measured in
// runes. The constraint is checked by Validate, never while typing.
type Text struct {
	Value     string
	Multiline bool
	minLen    int
	maxLen    int
}

// NewText returns an unconstrained single line text value.
func NewText() *Text {
	return &Text{maxLen: math.MaxInt}
}

// NewMultiline returns an unconstrained multi line text value.
func NewMultiline() *Text {
	t := NewText()
	t.Multiline = true
	return t
}

// WithLength constrains the value to [min, max] runes. Negative bounds are
// treated as zero and inverted bounds are swapped.
func (t *Text) WithLength(min, max int) *Text {
	min, max = maxInt(min, 0), maxInt(max, 0)
	if max < min {
		min, max = max, min
	}
	t.minLen, t.maxLen = min, max
	return t
}

// LengthRange returns the inclusive rune length bounds.
func (t *Text) LengthRange() (min, max int) {
	return t.minLen, t.maxLen
}

// Validate reports whether the current value honours the length constraint.
func (t *Text) Validate() error {
	n := utf8.RuneCountInString(t.Value)
	if n < t.minLen {
		return fmt.Errorf("min length %d, got %d", t.minLen, n)
	}
	if n > t.maxLen {
		return fmt.Errorf("max length %d, got %d", t.maxLen, n)
	}
	return nil
}

func (*Text) Kind() Kind { return KindText }

func (t *Text) Render(s Surface) Response {
	return s.TextEdit(&t.Value, t.Multiline)
}

func (t *Text) Reset() {
	t.Value = ""
}

func (t *Text) snapshot() any { return t.Value }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
