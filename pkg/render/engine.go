package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Extension is appended to template names that have none.
const Extension = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	name    string
	files   fs.FS
	globals map[string]any
	raw     bool
}

// WithName names the underlying template set.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithFS loads file templates, includes among them, from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithGlobals seeds values visible to every template. Per call data wins on
// conflicting keys.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// WithoutEscaping turns HTML autoescaping off for every template the engine
// compiles. Use it for output that is not markup.
func WithoutEscaping() Option {
	return func(cfg *config) {
		cfg.raw = true
	}
}

// Engine renders pongo2 templates from files or strings. Compiled templates
// are cached, keyed by file name or by source.
type Engine struct {
	set *pongo2.TemplateSet
	raw bool

	mu       sync.Mutex
	byName   map[string]*pongo2.Template
	bySource map[string]*pongo2.Template
}

// New constructs an Engine. Without WithFS only RenderString is usable.
func New(options ...Option) (*Engine, error) {
	cfg := &config{name: "projector"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	files := cfg.files
	if files == nil {
		files = emptyFS{}
	}
	set := pongo2.NewSet(cfg.name, loader{files: files, raw: cfg.raw})
	if len(cfg.globals) > 0 {
		globals, err := toContext(cfg.globals)
		if err != nil {
			return nil, fmt.Errorf("render: globals: %w", err)
		}
		set.Globals.Update(globals)
	}
	registerFilters()

	return &Engine{
		set:      set,
		raw:      cfg.raw,
		byName:   make(map[string]*pongo2.Template),
		bySource: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate renders the named file template, appending Extension when
// the name has none. The result is returned and copied to every writer.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("render: engine is nil")
	}
	if path.Ext(name) == "" {
		name += Extension
	}
	tmpl, err := e.file(name)
	if err != nil {
		return "", err
	}
	rendered, err := execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("render: execute template %q: %w", name, err)
	}
	return rendered, writeAll(rendered, out)
}

// RenderString compiles, or reuses, an inline template and renders it.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("render: engine is nil")
	}
	tmpl, err := e.inline(source)
	if err != nil {
		return "", err
	}
	rendered, err := execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("render: execute template string: %w", err)
	}
	return rendered, writeAll(rendered, out)
}

func (e *Engine) file(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.byName[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", name, err)
	}
	e.byName[name] = tmpl
	return tmpl, nil
}

func (e *Engine) inline(source string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.bySource[source]; ok {
		return tmpl, nil
	}
	compiled := source
	if e.raw {
		compiled = unescaped(source)
	}
	tmpl, err := e.set.FromString(compiled)
	if err != nil {
		return nil, fmt.Errorf("render: parse template string: %w", err)
	}
	e.bySource[source] = tmpl
	return tmpl, nil
}

func unescaped(source string) string {
	return "{% autoescape off %}" + source + "{% endautoescape %}"
}

func execute(tmpl *pongo2.Template, data any) (string, error) {
	viewContext, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("convert data: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeAll(rendered string, out []io.Writer) error {
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}

// toContext accepts maps directly and round-trips anything else through JSON
// so struct tags decide the template keys.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out := pongo2.Context{}
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// loader resolves every template path, includes too, from the root of
// files. Raw loaders wrap each file so it renders without escaping.
type loader struct {
	files fs.FS
	raw   bool
}

func (l loader) Abs(_, name string) string {
	return path.Clean(strings.TrimPrefix(name, "/"))
}

func (l loader) Get(name string) (io.Reader, error) {
	src, err := fs.ReadFile(l.files, name)
	if err != nil {
		return nil, err
	}
	if l.raw {
		return strings.NewReader(unescaped(string(src))), nil
	}
	return bytes.NewReader(src), nil
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
