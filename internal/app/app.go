package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/DerekForgione/Projector/internal/config"
	"github.com/DerekForgione/Projector/internal/logging"
	"github.com/DerekForgione/Projector/pkg/appstate"
	"github.com/DerekForgione/Projector/pkg/form"
	"github.com/DerekForgione/Projector/pkg/project"
	"github.com/DerekForgione/Projector/pkg/schema"
	"github.com/DerekForgione/Projector/pkg/surface/html"
	"github.com/DerekForgione/Projector/pkg/surface/palette"
	"github.com/DerekForgione/Projector/pkg/surface/prompt"
	"github.com/DerekForgione/Projector/pkg/surface/term"
)

// Surface kinds.
const (
	SurfaceTerm   = "term"
	SurfacePrompt = "prompt"
	SurfaceHTML   = "html"
)

// ErrUnknownTemplate is returned by Generate for a title no template has.
var ErrUnknownTemplate = errors.New("unknown template")

// ErrUnknownSurface is returned by Run for an unsupported surface kind.
var ErrUnknownSurface = errors.New("unknown surface")

type Option func(*App)

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStorage replaces the storage selected by configuration.
func WithStorage(storage appstate.Storage) Option {
	return func(a *App) {
		a.storage = storage
	}
}

// WithPromptOptions configures the prompt surface.
func WithPromptOptions(opts ...prompt.Option) Option {
	return func(a *App) {
		a.promptOpts = append(a.promptOpts, opts...)
	}
}

// WithHTMLOutput writes the html surface to w instead of the configured file.
func WithHTMLOutput(w io.Writer) Option {
	return func(a *App) {
		a.htmlOut = w
	}
}

// App wires the template registry to a surface and keeps the application
// state between runs.
type App struct {
	conf       *config.Config
	logger     *slog.Logger
	storage    appstate.Storage
	state      appstate.State
	palette    palette.Palette
	registry   *project.Registry
	document   *schema.Document
	promptOpts []prompt.Option
	htmlOut    io.Writer
}

// New loads the state, the palette and the templates.
func New(ctx context.Context, conf *config.Config, opts ...Option) (*App, error) {
	if conf == nil {
		return nil, errors.New("configuration is required")
	}
	a := &App{
		conf:   conf,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	if a.storage == nil {
		storage, err := OpenStorage(conf.Storage)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		a.storage = storage
	}

	state, err := appstate.Load(ctx, a.storage)
	if err != nil {
		a.logger.WarnContext(ctx, "could not load app state, using defaults", logging.Error(err))
	}
	a.state = state

	if err := a.loadPalette(); err != nil {
		return nil, errors.WithStack(err)
	}

	registry, err := a.loadTemplates(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	a.registry = registry

	a.logger.DebugContext(ctx, "app ready",
		slog.Int("templates", registry.Len()),
		slog.String("theme", a.palette.Theme),
		slog.String("last_template", a.state.LastTemplate),
	)
	return a, nil
}

// OpenStorage builds the state storage named by conf.Kind.
func OpenStorage(conf config.Storage) (appstate.Storage, error) {
	switch strings.ToLower(conf.Kind) {
	case "", "file":
		return appstate.NewFileStorage(conf.File.Path), nil
	case "sql", "sqlite":
		storage, err := appstate.OpenSQLStorage(conf.Database.DSN)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return storage, nil
	case "redis":
		return appstate.NewRedisStorage(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB), nil
	}
	return nil, errors.Errorf("unknown storage kind %q", conf.Kind)
}

func (a *App) loadPalette() error {
	a.palette = palette.Default()
	dir := strings.TrimSpace(a.conf.Theme.Dir)
	if dir == "" {
		return nil
	}

	catalog, err := palette.LoadCatalog(os.DirFS(dir))
	if err != nil {
		return errors.Wrapf(err, "could not load themes from %s", dir)
	}

	name, variant := a.conf.Theme.Name, a.conf.Theme.Variant
	if name == "" && catalog.Has(a.state.Theme) {
		name = a.state.Theme
		if variant == "" {
			variant = a.state.Variant
		}
	}
	p, err := palette.FromSelector(catalog, name, variant)
	if err != nil {
		return errors.WithStack(err)
	}
	a.palette = p
	a.state.Theme = p.Theme
	a.state.Variant = p.Variant
	return nil
}

func (a *App) loadTemplates(ctx context.Context) (*project.Registry, error) {
	opts := []project.LoadOption{
		project.WithDefinedOptions(project.WithOutputDir(a.conf.Templates.OutputDir)),
	}
	if dir := strings.TrimSpace(a.conf.Templates.Definitions); dir != "" {
		opts = append(opts, project.WithDefinitions(os.DirFS(dir)))
	}
	if location := strings.TrimSpace(a.conf.Templates.OpenAPI); location != "" {
		doc, err := schema.Open(ctx, location,
			schema.WithExternalRefs(a.conf.Templates.ExternalRefs),
			schema.WithValidation(a.conf.Templates.Validate),
		)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		a.document = doc
		if a.conf.Templates.Operation == "" {
			a.logger.WarnContext(ctx, "no operation selected, OpenAPI document not imported",
				slog.String("location", doc.Location()),
				slog.Int("operations", len(doc.Operations())),
			)
		} else {
			opts = append(opts, project.WithOpenAPI(doc, a.conf.Templates.Operation))
		}
	}
	return project.Load(ctx, opts...)
}

// Operations lists the operation ids of the configured OpenAPI document.
func (a *App) Operations() ([]string, error) {
	if a.document == nil {
		return nil, errors.New("no OpenAPI document configured")
	}
	return a.document.Operations(), nil
}

// Registry returns the loaded templates.
func (a *App) Registry() *project.Registry { return a.registry }

// State returns the current application state.
func (a *App) State() appstate.State { return a.state }

// Palette returns the resolved colours.
func (a *App) Palette() palette.Palette { return a.palette }

// Frame draws every template once.
func (a *App) Frame(s form.Surface) form.Response {
	a.state.Frames++
	return a.registry.RenderAll(s)
}

// Generate runs the template titled title.
func (a *App) Generate(ctx context.Context, title string) error {
	tpl, ok := a.registry.Find(title)
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "%q", title)
	}
	a.state.LastTemplate = title

	ctx = logging.WithAttrs(ctx, slog.String("template", title))
	if err := tpl.Generate(ctx); err != nil {
		a.logger.ErrorContext(ctx, "generate failed", logging.Error(err))
		return err
	}
	attrs := []any{}
	if out, ok := tpl.(interface{ LastOutput() string }); ok {
		attrs = append(attrs, slog.String("path", out.LastOutput()))
	}
	a.logger.InfoContext(ctx, "generated", attrs...)
	return nil
}

// Run drives the named surface until it finishes.
func (a *App) Run(ctx context.Context, surface string) error {
	a.state.Surface = surface
	ctx = logging.WithAttrs(ctx, slog.String("surface", surface))

	switch surface {
	case SurfaceTerm:
		templates := make([]term.Template, 0, a.registry.Len())
		for _, tpl := range a.registry.All() {
			templates = append(templates, tpl)
		}
		model, err := term.Run(ctx, templates,
			term.WithPalette(a.palette),
			term.WithLogger(a.logger),
			term.WithFocusTemplate(a.state.LastTemplate),
			term.WithTitle(a.conf.Surface.Title),
		)
		if model != nil {
			if selected := model.Selected(); selected != "" {
				a.state.LastTemplate = selected
			}
			a.state.Frames += uint64(model.Frames())
		}
		return errors.WithStack(err)

	case SurfacePrompt:
		opts := append([]prompt.Option{
			prompt.WithTheme(prompt.Theme{
				HeadingPrefix: a.conf.Prompt.HeadingPrefix,
				WarningPrefix: a.conf.Prompt.WarningPrefix,
			}),
			prompt.WithPageSize(a.conf.Prompt.PageSize),
		}, a.promptOpts...)
		s := prompt.New(ctx, opts...)
		if err := s.Run(func(s form.Surface) { a.Frame(s) }); err != nil {
			return errors.WithStack(err)
		}
		return nil

	case SurfaceHTML:
		renderer, err := html.New(
			html.WithPalette(a.palette),
			html.WithTitle(a.conf.Surface.Title),
		)
		if err != nil {
			return errors.WithStack(err)
		}
		out := a.htmlOut
		if out == nil {
			file, err := os.Create(a.conf.Surface.Out)
			if err != nil {
				return errors.WithStack(err)
			}
			defer file.Close()
			out = file
			ctx = logging.WithAttrs(ctx, slog.String("path", a.conf.Surface.Out))
		}
		if err := renderer.Render(out, func(s form.Surface) { a.Frame(s) }); err != nil {
			return errors.WithStack(err)
		}
		a.logger.InfoContext(ctx, "html written")
		return nil
	}
	return errors.Wrapf(ErrUnknownSurface, "%q", surface)
}

// Close saves the application state and releases the storage.
func (a *App) Close(ctx context.Context) error {
	saveErr := appstate.Save(ctx, a.storage, a.state)
	closeErr := a.storage.Close()
	if saveErr != nil {
		return errors.WithStack(saveErr)
	}
	return errors.WithStack(closeErr)
}
