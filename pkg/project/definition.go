package project

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/DerekForgione/Projector/pkg/form"
)

// Definition is the declarative file form of a Defined template.
type Definition struct {
	Title       string            `json:"title" yaml:"title" validate:"required"`
	Description string            `json:"description" yaml:"description"`
	Output      OutputDefinition  `json:"output" yaml:"output"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields" validate:"dive"`
}

// OutputDefinition mirrors Output.
type OutputDefinition struct {
	Path      string `json:"path" yaml:"path"`
	Body      string `json:"body" yaml:"body"`
	BodyFile  string `json:"bodyFile" yaml:"bodyFile" validate:"excluded_with=Body"`
	Format    string `json:"format" yaml:"format" validate:"omitempty,oneof=yaml json"`
	Overwrite bool   `json:"overwrite" yaml:"overwrite"`
}

// FieldDefinition declares one field. Type is a form.Kind name.
type FieldDefinition struct {
	Name      string            `json:"name" yaml:"name" validate:"required"`
	Label     string            `json:"label" yaml:"label"`
	Type      string            `json:"type" yaml:"type" validate:"required,oneof=empty boolean integer unsigned real text file choice options struct optional_struct optional"`
	Default   any               `json:"default" yaml:"default"`
	Min       *float64          `json:"min" yaml:"min"`
	Max       *float64          `json:"max" yaml:"max"`
	MinLength *int              `json:"minLength" yaml:"minLength" validate:"omitempty,min=0"`
	MaxLength *int              `json:"maxLength" yaml:"maxLength" validate:"omitempty,min=0"`
	Multiline bool              `json:"multiline" yaml:"multiline"`
	Options   []string          `json:"options" yaml:"options"`
	Included  *bool             `json:"included" yaml:"included"`
	Fields    []FieldDefinition `json:"fields" yaml:"fields" validate:"dive"`
	Of        *FieldDefinition  `json:"of" yaml:"of" validate:"required_if=Type optional"`
}

var definitionValidator = validator.New(validator.WithRequiredStructEnabled())

// LoadFS walks fsys for .json, .yaml and .yml definitions and builds one
// template per file in path order. Titles must be unique.
func LoadFS(fsys fs.FS, opts ...DefinedOption) ([]*Defined, error) {
	if fsys == nil {
		return nil, nil
	}

	var (
		out    []*Defined
		titles = make(map[string]string)
	)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("project: read %s: %w", path, err)
		}
		def, err := ParseDefinition(data, path)
		if err != nil {
			return err
		}
		if prev, exists := titles[def.Title]; exists {
			return fmt.Errorf("project: duplicate template %q (files %s and %s)", def.Title, prev, path)
		}
		titles[def.Title] = path

		tpl, err := def.Build(append([]DefinedOption{WithTemplates(fsys)}, opts...)...)
		if err != nil {
			return fmt.Errorf("project: build %s: %w", path, err)
		}
		out = append(out, tpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseDefinition decodes JSON or YAML and validates the result.
func ParseDefinition(data []byte, source string) (Definition, error) {
	var def Definition
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("project: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("project: parse %s: invalid JSON or YAML", source)
		}
	}

	def.Title = strings.TrimSpace(def.Title)
	if err := definitionValidator.Struct(def); err != nil {
		return Definition{}, fmt.Errorf("project: validate %s: %w", source, err)
	}
	return def, nil
}

// Build converts the definition into a template.
func (def Definition) Build(opts ...DefinedOption) (*Defined, error) {
	fields, err := buildFields(def.Title, "", def.Fields)
	if err != nil {
		return nil, err
	}
	return NewDefined(def.Title, def.Description, form.New(fields...), Output{
		Path:      def.Output.Path,
		Body:      def.Output.Body,
		BodyFile:  def.Output.BodyFile,
		Format:    def.Output.Format,
		Overwrite: def.Output.Overwrite,
	}, opts...)
}

func buildFields(title, prefix string, defs []FieldDefinition) ([]*form.Field, error) {
	fields := make([]*form.Field, 0, len(defs))
	for _, fd := range defs {
		path := prefix + fd.Name
		value, err := fd.value(title, path)
		if err != nil {
			return nil, err
		}
		label := fd.Label
		if label == "" {
			label = fd.Name
		}
		fields = append(fields, form.NewField(fd.Name, label, value, form.WithID(title+"#"+path)))
	}
	return fields, nil
}

func (fd FieldDefinition) value(title, path string) (form.Value, error) {
	kind, ok := form.ParseKind(fd.Type)
	if !ok {
		return nil, fmt.Errorf("field %s: unknown type %q", path, fd.Type)
	}

	switch kind {
	case form.KindBoolean:
		b, _ := fd.Default.(bool)
		return form.NewBoolean(b), nil

	case form.KindInteger:
		lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
		var err error
		if fd.Min != nil {
			if lo, err = toInt64(path, "min", *fd.Min); err != nil {
				return nil, err
			}
		}
		if fd.Max != nil {
			if hi, err = toInt64(path, "max", *fd.Max); err != nil {
				return nil, err
			}
		}
		v := form.NewInteger(lo, hi)
		if d, ok := number(fd.Default); ok {
			def, err := toInt64(path, "default", d)
			if err != nil {
				return nil, err
			}
			v.Set(def)
		}
		return v, nil

	case form.KindUnsigned:
		lo, hi := uint64(0), uint64(math.MaxUint64)
		var err error
		if fd.Min != nil {
			if lo, err = toUint64(path, "min", *fd.Min); err != nil {
				return nil, err
			}
		}
		if fd.Max != nil {
			if hi, err = toUint64(path, "max", *fd.Max); err != nil {
				return nil, err
			}
		}
		v := form.NewUnsigned(lo, hi)
		if d, ok := number(fd.Default); ok {
			def, err := toUint64(path, "default", d)
			if err != nil {
				return nil, err
			}
			v.Set(def)
		}
		return v, nil

	case form.KindReal:
		lo, hi := -math.MaxFloat64, math.MaxFloat64
		if fd.Min != nil {
			lo = *fd.Min
		}
		if fd.Max != nil {
			hi = *fd.Max
		}
		v := form.NewReal(lo, hi)
		if d, ok := number(fd.Default); ok {
			v.Set(d)
		}
		return v, nil

	case form.KindText:
		v := form.NewText()
		if fd.Multiline {
			v = form.NewMultiline()
		}
		if fd.MinLength != nil || fd.MaxLength != nil {
			lo, hi := 0, math.MaxInt
			if fd.MinLength != nil {
				lo = *fd.MinLength
			}
			if fd.MaxLength != nil {
				hi = *fd.MaxLength
			}
			v.WithLength(lo, hi)
		}
		v.Value, _ = fd.Default.(string)
		return v, nil

	case form.KindFile:
		path, _ := fd.Default.(string)
		return form.NewFile(path), nil

	case form.KindChoice:
		v := form.NewChoice(fd.Options...)
		if def, ok := fd.Default.(string); ok {
			for i, option := range fd.Options {
				if option == def {
					v.Select(i)
					break
				}
			}
		}
		return v, nil

	case form.KindMultiOption:
		v := form.NewMultiOption(fd.Options...)
		if defaults, ok := fd.Default.([]any); ok {
			checked := make(map[string]bool, len(defaults))
			for _, d := range defaults {
				checked[fmt.Sprint(d)] = true
			}
			for i := range v.Options {
				v.Options[i].Checked = checked[v.Options[i].Label]
			}
		}
		return v, nil

	case form.KindStruct, form.KindOptionalStruct:
		fields, err := buildFields(title, path+".", fd.Fields)
		if err != nil {
			return nil, err
		}
		if kind == form.KindStruct {
			return form.NewStruct(fields...), nil
		}
		v := form.NewOptionalStruct(fields...)
		if fd.Included != nil {
			v.Included = *fd.Included
		}
		return v, nil

	case form.KindOptional:
		if fd.Of == nil {
			return form.NewOptional(nil), nil
		}
		inner, err := fd.Of.value(title, path)
		if err != nil {
			return nil, err
		}
		return form.NewOptional(inner), nil
	}
	return form.NewEmpty(), nil
}

// 2^63 and 2^64 are exact in float64 and are the first values past each range.
const (
	int64Limit  = float64(1 << 63)
	uint64Limit = float64(1 << 64)
)

func toInt64(path, bound string, f float64) (int64, error) {
	if math.IsNaN(f) || f < -int64Limit || f >= int64Limit {
		return 0, fmt.Errorf("field %s: %s %g is outside the integer range", path, bound, f)
	}
	return int64(f), nil
}

func toUint64(path, bound string, f float64) (uint64, error) {
	if math.IsNaN(f) || f < 0 || f >= uint64Limit {
		return 0, fmt.Errorf("field %s: %s %g is outside the unsigned range", path, bound, f)
	}
	return uint64(f), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
