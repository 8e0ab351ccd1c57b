// Package html renders a single form frame as a static HTML page. The frame
// is captured with the record surface and the markup comes from embedded
// pongo2 templates styled with the palette's CSS variables. Captions may carry
// inline emphasis, filtered through a bluemonday policy; warnings, values and
// option labels are always escaped.
package html

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/DerekForgione/Projector/pkg/form"
	"github.com/DerekForgione/Projector/pkg/render"
	"github.com/DerekForgione/Projector/pkg/surface/palette"
	"github.com/DerekForgione/Projector/pkg/surface/record"
)

//go:embed templates/*.tpl
var templateFS embed.FS

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette sets the colours exported as CSS variables.
func WithPalette(p palette.Palette) Option {
	return func(r *Renderer) {
		r.palette = p
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			r.title = trimmed
		}
	}
}

// Renderer turns frames into HTML documents.
type Renderer struct {
	engine   *render.Engine
	recorder *record.Recorder
	palette  palette.Palette
	title    string
}

// New builds a Renderer over the embedded templates.
func New(options ...Option) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("html: templates: %w", err)
	}
	engine, err := render.New(render.WithName("html"), render.WithFS(sub))
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	r := &Renderer{
		engine:   engine,
		recorder: record.New(),
		palette:  palette.Default(),
		title:    "Projector",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Render captures one frame of draw and writes it to w as a complete
// document.
func (r *Renderer) Render(w io.Writer, draw func(form.Surface)) error {
	return r.RenderFrame(w, r.recorder.Frame(draw))
}

// RenderFrame writes an already captured frame.
func (r *Renderer) RenderFrame(w io.Writer, frame *record.Node) error {
	if frame == nil {
		return fmt.Errorf("html: frame is required")
	}
	body, err := r.renderChildren(frame)
	if err != nil {
		return err
	}
	_, err = r.engine.RenderTemplate("page", map[string]any{
		"title":   r.title,
		"theme":   r.palette.Theme,
		"variant": r.palette.Variant,
		"css":     cssVarsStyle(r.palette.CSSVars()),
		"body":    body,
	}, w)
	if err != nil {
		return fmt.Errorf("html: render page: %w", err)
	}
	return nil
}

func (r *Renderer) renderNode(node *record.Node) (string, error) {
	var (
		children string
		err      error
	)
	if node.Widget == record.WidgetColumns {
		children, err = r.renderGrid(node)
	} else {
		children, err = r.renderChildren(node)
	}
	if err != nil {
		return "", err
	}

	view := map[string]any{
		"widget":    string(node.Widget),
		"id":        domID(node.Path),
		"text":      node.Text,
		"markup":    sanitizeMarkup(node.Text),
		"multiline": node.Multiline,
		"children":  children,
		"count":     len(node.Children),
	}
	switch v := node.Value.(type) {
	case bool:
		view["checked"] = v
	case nil:
	default:
		view["value"] = fmt.Sprint(v)
	}
	if node.Min != nil {
		view["min"] = fmt.Sprint(node.Min)
		view["max"] = fmt.Sprint(node.Max)
	}
	if node.Widget == record.WidgetCombo {
		selected, _ := node.Value.(int)
		options := make([]map[string]any, len(node.Options))
		for i, label := range node.Options {
			options[i] = map[string]any{"label": label, "selected": i == selected}
		}
		view["options"] = options
	}

	out, err := r.engine.RenderTemplate("widget", view)
	if err != nil {
		return "", fmt.Errorf("html: render %s: %w", node.Widget, err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Renderer) renderChildren(node *record.Node) (string, error) {
	var b strings.Builder
	for _, child := range node.Children {
		out, err := r.renderNode(child)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// renderGrid interleaves the columns row by row when every column holds the
// same number of cells, so labels line up with their controls.
func (r *Renderer) renderGrid(node *record.Node) (string, error) {
	rows := -1
	for _, col := range node.Children {
		if rows >= 0 && len(col.Children) != rows {
			return r.renderChildren(node)
		}
		rows = len(col.Children)
	}

	var b strings.Builder
	for i := 0; i < rows; i++ {
		for _, col := range node.Children {
			out, err := r.renderNode(col.Children[i])
			if err != nil {
				return "", err
			}
			b.WriteString(`<div class="cell">`)
			b.WriteString(out)
			b.WriteString("</div>\n")
		}
	}
	return b.String(), nil
}

// sanitizeMarkup keeps inline emphasis in captions and drops every other
// element.
func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "code", "small")
		textPolicy = policy
	})
	return strings.TrimSpace(textPolicy.Sanitize(trimmed))
}

func domID(path string) string {
	if path == "" {
		return ""
	}
	replacer := strings.NewReplacer("/", "-", "#", "-")
	return "w" + replacer.Replace(path)
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	strip := strings.NewReplacer("<", "", ">", "", ";", "", "{", "", "}", "")
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(strip.Replace(key))
		b.WriteString(": ")
		b.WriteString(strip.Replace(vars[key]))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
