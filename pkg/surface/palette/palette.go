// Package palette resolves the colour tokens surfaces draw with from a
// go-theme manifest.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token names every surface understands.
const (
	Text       = "text"
	Muted      = "muted"
	Accent     = "accent"
	Focus      = "focus"
	Warning    = "warning"
	Border     = "border"
	Background = "background"
)

var defaults = map[string]string{
	Text:       "#e4e4e7",
	Muted:      "#71717a",
	Accent:     "#38bdf8",
	Focus:      "#f472b6",
	Warning:    "#f59e0b",
	Border:     "#3f3f46",
	Background: "#18181b",
}

// ErrUnknownVariant is returned when a manifest has no such variant.
var ErrUnknownVariant = errors.New("palette: unknown variant")

// Palette is a resolved token set.
type Palette struct {
	Theme   string
	Variant string
	tokens  map[string]string
}

// Default returns the built-in palette.
func Default() Palette {
	return Palette{Theme: "default", tokens: copyTokens(defaults)}
}

// FromManifest layers the manifest tokens, then the variant's, over the
// built-in palette. An empty variant selects the base tokens.
func FromManifest(m *theme.Manifest, variant string) (Palette, error) {
	if m == nil {
		return Palette{}, errors.New("palette: manifest is required")
	}
	p := Default()
	p.Theme = m.Name
	for name, value := range m.Tokens {
		p.set(name, value)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		return p, nil
	}
	v, ok := m.Variants[variant]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, m.Name, variant)
	}
	p.Variant = variant
	for name, value := range v.Tokens {
		p.set(name, value)
	}
	return p, nil
}

// FromSelector resolves name and variant through selector.
func FromSelector(selector theme.ThemeSelector, name, variant string) (Palette, error) {
	if selector == nil {
		return Palette{}, errors.New("palette: selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Palette{}, fmt.Errorf("palette: select %s/%s: %w", name, variant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return Palette{}, fmt.Errorf("palette: theme %q has no manifest", name)
	}
	p, err := FromManifest(selection.Manifest, selection.Variant)
	if err != nil {
		return Palette{}, err
	}
	if selection.Theme != "" {
		p.Theme = selection.Theme
	}
	return p, nil
}

// Token returns the named colour, falling back to the built-in value.
func (p Palette) Token(name string) string {
	if value, ok := p.tokens[name]; ok {
		return value
	}
	return defaults[name]
}

// Names lists the resolved token names in sorted order.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p.tokens))
	for name := range p.tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CSSVars maps every token to a "--name" custom property.
func (p Palette) CSSVars() map[string]string {
	vars := make(map[string]string, len(p.tokens))
	for name, value := range p.tokens {
		vars["--"+name] = value
	}
	return vars
}

func (p *Palette) set(name, value string) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return
	}
	if p.tokens == nil {
		p.tokens = make(map[string]string)
	}
	p.tokens[name] = value
}

func copyTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
