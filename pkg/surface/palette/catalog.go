package palette

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTheme is returned when a catalog has no theme by that name.
var ErrUnknownTheme = errors.New("palette: unknown theme")

// Catalog holds theme manifests by name and selects among them. It
// satisfies theme.ThemeSelector.
type Catalog struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{manifests: make(map[string]*theme.Manifest)}
}

// LoadCatalog reads every .yaml, .yml and .json manifest at the root of
// fsys.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("palette: read themes: %w", err)
	}
	c := NewCatalog()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("palette: read %s: %w", entry.Name(), err)
		}
		var manifest theme.Manifest
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("palette: parse %s: %w", entry.Name(), err)
		}
		if err := c.Register(&manifest); err != nil {
			return nil, fmt.Errorf("palette: %s: %w", entry.Name(), err)
		}
	}
	return c, nil
}

// Register adds m. Names must be unique.
func (c *Catalog) Register(m *theme.Manifest) error {
	if m == nil {
		return errors.New("manifest is required")
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return errors.New("manifest name is required")
	}
	if _, ok := c.manifests[name]; ok {
		return fmt.Errorf("theme %q already registered", name)
	}
	c.manifests[name] = m
	return nil
}

// Names lists the registered themes in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a theme called name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.manifests[name]
	return ok
}

// Select returns the named theme, or the first by name when name is empty.
// The variant must exist in the manifest unless it is empty.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		names := c.Names()
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: catalog is empty", ErrUnknownTheme)
		}
		name = names[0]
	}
	m, ok := c.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}
