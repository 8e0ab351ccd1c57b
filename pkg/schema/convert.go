package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/DerekForgione/Projector/pkg/form"
)

// converter turns schemas into form values. active holds the schemas on the
// current descent so recursive references end in an Empty value.
type converter struct {
	operationID string
	active      map[*openapi3.Schema]bool
}

func newConverter(operationID string) *converter {
	return &converter{operationID: operationID, active: make(map[*openapi3.Schema]bool)}
}

func (c *converter) form(ref *openapi3.SchemaRef, prefix string) *form.Form {
	if ref == nil || ref.Value == nil {
		return form.New()
	}
	src := ref.Value
	if c.active[src] {
		return form.New()
	}
	c.active[src] = true
	defer delete(c.active, src)

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}
	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]*form.Field, 0, len(names))
	for _, name := range names {
		prop := src.Properties[name]
		path := joinPath(prefix, name)
		fields = append(fields, form.NewField(
			name,
			label(name, prop),
			c.value(prop, path, required[name]),
			form.WithID(c.operationID+"#"+path),
		))
	}
	return form.New(fields...)
}

func (c *converter) value(ref *openapi3.SchemaRef, path string, required bool) form.Value {
	if ref == nil || ref.Value == nil {
		return form.NewEmpty()
	}
	src := ref.Value
	if c.active[src] {
		return form.NewEmpty()
	}

	if schemaType(src) == openapi3.TypeObject {
		nested := c.form(ref, path)
		if required {
			return &form.Struct{Form: nested}
		}
		return &form.OptionalStruct{Form: nested, Included: true}
	}

	v := c.scalar(src)
	if required || v.Kind() == form.KindEmpty {
		return v
	}
	return form.NewOptional(v)
}

func (c *converter) scalar(src *openapi3.Schema) form.Value {
	switch schemaType(src) {
	case openapi3.TypeBoolean:
		b, _ := src.Default.(bool)
		return form.NewBoolean(b)
	case openapi3.TypeInteger:
		return integer(src)
	case openapi3.TypeNumber:
		lo, hi := -math.MaxFloat64, math.MaxFloat64
		if src.Min != nil {
			lo = *src.Min
		}
		if src.Max != nil {
			hi = *src.Max
		}
		r := form.NewReal(lo, hi)
		if d, ok := toFloat(src.Default); ok {
			r.Set(d)
		}
		return r
	case openapi3.TypeString:
		return str(src)
	case openapi3.TypeArray:
		if src.Items == nil || src.Items.Value == nil || len(src.Items.Value.Enum) == 0 {
			return form.NewEmpty()
		}
		m := form.NewMultiOption(labels(src.Items.Value.Enum)...)
		if defaults, ok := src.Default.([]any); ok {
			checked := make(map[string]bool, len(defaults))
			for _, d := range defaults {
				checked[fmt.Sprint(d)] = true
			}
			for i := range m.Options {
				m.Options[i].Checked = checked[m.Options[i].Label]
			}
		}
		return m
	}
	return form.NewEmpty()
}

func integer(src *openapi3.Schema) form.Value {
	if src.Min != nil && *src.Min >= 0 {
		hi := uint64(math.MaxUint64)
		if src.Max != nil && *src.Max >= 0 {
			hi = saturateUint(*src.Max)
		}
		u := form.NewUnsigned(saturateUint(*src.Min), hi)
		if d, ok := toFloat(src.Default); ok && d >= 0 {
			u.Set(saturateUint(d))
		}
		return u
	}
	lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
	if src.Min != nil {
		lo = saturateInt(*src.Min)
	}
	if src.Max != nil {
		hi = saturateInt(*src.Max)
	}
	i := form.NewInteger(lo, hi)
	if d, ok := toFloat(src.Default); ok {
		i.Set(saturateInt(d))
	}
	return i
}

// saturateInt converts f to int64, pinning values past either end of the
// range to that end. NaN maps to zero.
func saturateInt(f float64) int64 {
	switch {
	case f != f:
		return 0
	case f <= math.MinInt64:
		return math.MinInt64
	case f >= 1<<63:
		return math.MaxInt64
	}
	return int64(f)
}

func saturateUint(f float64) uint64 {
	switch {
	case f != f, f <= 0:
		return 0
	case f >= 1<<64:
		return math.MaxUint64
	}
	return uint64(f)
}

func str(src *openapi3.Schema) form.Value {
	def, _ := src.Default.(string)
	if len(src.Enum) > 0 {
		options := labels(src.Enum)
		choice := form.NewChoice(options...)
		for i, option := range options {
			if option == def {
				choice.Select(i)
				break
			}
		}
		return choice
	}
	switch strings.ToLower(src.Format) {
	case "binary", "path":
		return form.NewFile(def)
	}

	text := form.NewText()
	if strings.EqualFold(src.Format, "textarea") {
		text = form.NewMultiline()
	}
	if src.MinLength > 0 || src.MaxLength != nil {
		hi := math.MaxInt
		if src.MaxLength != nil && *src.MaxLength < uint64(math.MaxInt) {
			hi = int(*src.MaxLength)
		}
		lo := math.MaxInt
		if src.MinLength < uint64(math.MaxInt) {
			lo = int(src.MinLength)
		}
		text.WithLength(lo, hi)
	}
	text.Value = def
	return text
}

func schemaType(src *openapi3.Schema) string {
	if src.Type != nil {
		if values := src.Type.Slice(); len(values) > 0 {
			return values[0]
		}
	}
	if len(src.Properties) > 0 {
		return openapi3.TypeObject
	}
	return ""
}

func labels(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// label prefers the schema title, then a humanised property name.
func label(name string, ref *openapi3.SchemaRef) string {
	if ref != nil && ref.Value != nil && strings.TrimSpace(ref.Value.Title) != "" {
		return strings.TrimSpace(ref.Value.Title)
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return name
	}
	out := strings.ToLower(strings.Join(words, " "))
	r := []rune(out)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
