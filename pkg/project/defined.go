package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DerekForgione/Projector/pkg/form"
	"github.com/DerekForgione/Projector/pkg/render"
)

// Output formats used when no body template is configured.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// DefaultOutputPath names the generated file after the template title.
const DefaultOutputPath = "{{ title|slug }}.{{ format }}"

// Output describes the file a Defined template writes. Path and Body are
// pongo2 templates; BodyFile names a template in the filesystem passed with
// WithTemplates. Templates see title, description and format as globals and
// the form as values.
type Output struct {
	Path      string
	Body      string
	BodyFile  string
	Format    string
	Overwrite bool
}

// DefinedOption configures a Defined template.
type DefinedOption func(*Defined)

// WithOutputDir sets the directory generated files are written into.
func WithOutputDir(dir string) DefinedOption {
	return func(d *Defined) {
		if strings.TrimSpace(dir) != "" {
			d.dir = dir
		}
	}
}

// WithTemplates makes the files in fsys available to BodyFile and to
// include tags.
func WithTemplates(fsys fs.FS) DefinedOption {
	return func(d *Defined) {
		d.templates = fsys
	}
}

// Defined is a template assembled at runtime from a form and an output
// description.
type Defined struct {
	title       string
	description string
	form        *form.Form
	output      Output
	dir         string
	templates   fs.FS
	engine      *render.Engine
	last        string
}

var _ Template = (*Defined)(nil)

// NewDefined builds a template. A nil form becomes an empty form.
func NewDefined(title, description string, f *form.Form, output Output, opts ...DefinedOption) (*Defined, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("project: template title is required")
	}
	if f == nil {
		f = form.New()
	}
	output.Format = strings.ToLower(strings.TrimSpace(output.Format))
	switch output.Format {
	case "":
		output.Format = FormatYAML
	case FormatYAML, FormatJSON:
	default:
		return nil, fmt.Errorf("project: unsupported output format %q", output.Format)
	}
	if strings.TrimSpace(output.Path) == "" {
		output.Path = DefaultOutputPath
	}
	if output.Body != "" && output.BodyFile != "" {
		return nil, errors.New("project: output body and body file are exclusive")
	}

	d := &Defined{
		title:       title,
		description: description,
		form:        f,
		output:      output,
		dir:         ".",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.output.BodyFile != "" && d.templates == nil {
		return nil, fmt.Errorf("project: body file %q needs a template filesystem", d.output.BodyFile)
	}

	engine, err := render.New(
		render.WithName("project"),
		render.WithFS(d.templates),
		render.WithoutEscaping(),
		render.WithGlobals(map[string]any{
			"title":       d.title,
			"description": d.description,
			"format":      d.output.Format,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("project: create renderer: %w", err)
	}
	d.engine = engine
	return d, nil
}

func (d *Defined) Title() string       { return d.title }
func (d *Defined) Description() string { return d.description }

// Form exposes the template's fields.
func (d *Defined) Form() *form.Form { return d.form }

// Output returns the output description.
func (d *Defined) Output() Output { return d.output }

// LastOutput returns the path written by the last successful Generate.
func (d *Defined) LastOutput() string { return d.last }

func (d *Defined) Render(s form.Surface) form.Response { return d.form.Render(s) }

func (d *Defined) Reset() { d.form.Reset() }

// Generate validates the form and writes the output file. An existing file
// is an AlreadyExists error unless the output allows overwriting.
func (d *Defined) Generate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Unknown("generate " + d.title).Wrap(err)
	}
	if err := d.form.Validate(); err != nil {
		return Unknown("invalid form").Wrap(err)
	}

	values := d.form.Values()
	data := map[string]any{"values": values}

	name, err := d.engine.RenderString(d.output.Path, data)
	if err != nil {
		return Unknown("render output path").Wrap(err)
	}
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || !filepath.IsLocal(name) {
		return InvalidPermission(fmt.Sprintf("output path %q is outside %s", name, d.dir))
	}

	body, err := d.body(data, values)
	if err != nil {
		return Unknown("render output body").Wrap(err)
	}

	target := filepath.Join(d.dir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return classify(err, "create "+filepath.Dir(target))
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if d.output.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(target, flags, 0o644)
	if err != nil {
		return classify(err, target)
	}
	if _, err := file.Write(body); err != nil {
		_ = file.Close()
		return classify(err, target)
	}
	if err := file.Close(); err != nil {
		return classify(err, target)
	}
	d.last = target
	return nil
}

func (d *Defined) body(data, values map[string]any) ([]byte, error) {
	switch {
	case d.output.Body != "":
		out, err := d.engine.RenderString(d.output.Body, data)
		return []byte(out), err
	case d.output.BodyFile != "":
		out, err := d.engine.RenderTemplate(d.output.BodyFile, data)
		return []byte(out), err
	}
	if d.output.Format == FormatJSON {
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
	return yaml.Marshal(values)
}

func classify(err error, message string) *Error {
	switch {
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists(message).Wrap(err)
	case errors.Is(err, fs.ErrPermission):
		return InvalidPermission(message).Wrap(err)
	default:
		return Unknown(message).Wrap(err)
	}
}
