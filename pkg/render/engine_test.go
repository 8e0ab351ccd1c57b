package render_test

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/DerekForgione/Projector/pkg/render"
	"github.com/DerekForgione/Projector/pkg/testsupport"
)

func newEngine(t *testing.T, opts ...render.Option) *render.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":        {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl":   {Data: []byte("{{ title }} as {{ format }}")},
		"notes.md.tpl":     {Data: []byte("{% include \"partials/sig.tpl\" %} & {{ name }}")},
		"partials/sig.tpl": {Data: []byte("-- {{ title }}")},
		"escape.tpl":       {Data: []byte("{{ name }}")},
		"docs/page.tpl":    {Data: []byte("{% include \"partials/sig.tpl\" %}")},
	}
	engine, err := render.New(append([]render.Option{render.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output: result=%q written=%q", result, written)
	}
}

func TestEngine_Globals(t *testing.T) {
	engine := newEngine(t, render.WithGlobals(map[string]any{
		"title":  "Readme",
		"format": "yaml",
	}))

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Readme as yaml" {
		t.Fatalf("want globals, got %q", got)
	}

	got, err = engine.RenderString("{{ title }}", map[string]any{"title": "Override"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Override" {
		t.Fatalf("call data should win over globals, got %q", got)
	}
}

func TestEngine_EscapingIsOnByDefault(t *testing.T) {
	data := map[string]any{"name": "<b>&</b>"}

	escaped, err := newEngine(t).RenderTemplate("escape", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if escaped != "&lt;b&gt;&amp;&lt;/b&gt;" {
		t.Fatalf("want escaped output, got %q", escaped)
	}

	raw := newEngine(t, render.WithoutEscaping())
	got, err := raw.RenderTemplate("escape", data)
	if err != nil {
		t.Fatalf("render raw: %v", err)
	}
	if got != "<b>&</b>" {
		t.Fatalf("want raw output, got %q", got)
	}
	got, err = raw.RenderString("{{ name }}", data)
	if err != nil {
		t.Fatalf("render raw string: %v", err)
	}
	if got != "<b>&</b>" {
		t.Fatalf("want raw string output, got %q", got)
	}
}

func TestEngine_RawTemplateIncludes(t *testing.T) {
	globals := render.WithGlobals(map[string]any{"title": "R&D"})
	data := map[string]any{"name": "Ada"}

	raw := newEngine(t, render.WithoutEscaping(), globals)
	got, err := raw.RenderTemplate("notes.md.tpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "-- R&D & Ada" {
		t.Fatalf("included partial should render raw, got %q", got)
	}

	got, err = raw.RenderTemplate("docs/page", data)
	if err != nil {
		t.Fatalf("render nested: %v", err)
	}
	if got != "-- R&D" {
		t.Fatalf("include paths should resolve from the root, got %q", got)
	}

	escaped := newEngine(t, globals)
	got, err = escaped.RenderTemplate("notes.md.tpl", data)
	if err != nil {
		t.Fatalf("render escaped: %v", err)
	}
	if got != "-- R&amp;D & Ada" {
		t.Fatalf("unexpected escaped output %q", got)
	}
}

func TestEngine_RenderStringWithoutFiles(t *testing.T) {
	engine, err := render.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for range 2 {
		got, err := engine.RenderString("{{ title|slug }}/{{ count }}.yaml", map[string]any{
			"title": "My  Project: One",
			"count": uint64(3),
		})
		if err != nil {
			t.Fatalf("render string: %v", err)
		}
		if got != "my-project-one/3.yaml" {
			t.Fatalf("unexpected path %q", got)
		}
	}
}

func TestEngine_StructDataUsesJSONKeys(t *testing.T) {
	engine, err := render.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	data := struct {
		Title string `json:"title"`
	}{Title: "x"}

	got, err := engine.RenderString("{{ title }}", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "x" {
		t.Fatalf("want x, got %q", got)
	}
}

func TestEngine_Errors(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := engine.RenderString("{% if %}", nil); err == nil {
		t.Fatalf("expected parse error")
	}
	var nilEngine *render.Engine
	if _, err := nilEngine.RenderString("x", nil); err == nil {
		t.Fatalf("expected nil engine error")
	}
}
