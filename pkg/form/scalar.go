package form

import "math"

// Number enumerates the scalar representations a field can hold.
type Number interface {
	int64 | uint64 | float64
}

// Scalar is a numeric value bounded by an inclusive range. The value never
// leaves the range: construction starts at the lower bound and every write,
// including writes made by the surface while rendering, is clamped.
type Scalar[T Number] struct {
	value T
	min   T
	max   T
}

type (
	Integer  = Scalar[int64]
	Unsigned = Scalar[uint64]
	Real     = Scalar[float64]
)

// Ranged returns a scalar bounded by [min, max], starting at min. Inverted
// bounds are swapped.
func Ranged[T Number](min, max T) *Scalar[T] {
	if isNaN(min) || isNaN(max) {
		return Unbounded[T]()
	}
	if max < min {
		min, max = max, min
	}
	return &Scalar[T]{value: min, min: min, max: max}
}

// Unbounded returns a scalar spanning the natural range of T, starting at the
// type's minimum.
func Unbounded[T Number]() *Scalar[T] {
	min, max := naturalRange[T]()
	return &Scalar[T]{value: min, min: min, max: max}
}

// NewInteger returns an Integer bounded by [min, max].
func NewInteger(min, max int64) *Integer { return Ranged(min, max) }

// NewUnsigned returns an Unsigned bounded by [min, max].
func NewUnsigned(min, max uint64) *Unsigned { return Ranged(min, max) }

// NewReal returns a Real bounded by [min, max].
func NewReal(min, max float64) *Real { return Ranged(min, max) }

// Value returns the current value.
func (s *Scalar[T]) Value() T { return s.value }

// Range returns the inclusive bounds.
func (s *Scalar[T]) Range() (min, max T) { return s.min, s.max }

// Set stores v clamped into the range and returns the stored value.
func (s *Scalar[T]) Set(v T) T {
	s.value = s.clamp(v)
	return s.value
}

func (s *Scalar[T]) Kind() Kind {
	switch any(s.value).(type) {
	case int64:
		return KindInteger
	case uint64:
		return KindUnsigned
	default:
		return KindReal
	}
}

// Render draws a slider and clamps whatever the surface wrote. The response
// reports a change only when the clamped value differs from the one held
// before the frame.
func (s *Scalar[T]) Render(surface Surface) Response {
	before := s.value
	switch v := any(&s.value).(type) {
	case *int64:
		surface.SliderInt(v, any(s.min).(int64), any(s.max).(int64))
	case *uint64:
		surface.SliderUint(v, any(s.min).(uint64), any(s.max).(uint64))
	case *float64:
		surface.SliderFloat(v, any(s.min).(float64), any(s.max).(float64))
	}
	s.value = s.clamp(s.value)
	return Response{Changed: s.value != before}
}

func (s *Scalar[T]) Reset() {
	s.value = s.min
}

func (s *Scalar[T]) snapshot() any { return s.value }

func (s *Scalar[T]) clamp(v T) T {
	switch {
	case isNaN(v):
		return s.min
	case v < s.min:
		return s.min
	case v > s.max:
		return s.max
	}
	return v
}

func isNaN[T Number](v T) bool {
	return v != v
}

func naturalRange[T Number]() (T, T) {
	var zero T
	var min, max any
	switch any(zero).(type) {
	case int64:
		min, max = int64(math.MinInt64), int64(math.MaxInt64)
	case uint64:
		min, max = uint64(0), uint64(math.MaxUint64)
	case float64:
		min, max = -math.MaxFloat64, math.MaxFloat64
	}
	return min.(T), max.(T)
}
