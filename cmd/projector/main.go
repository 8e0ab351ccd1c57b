package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/DerekForgione/Projector/internal/app"
	"github.com/DerekForgione/Projector/internal/config"
	"github.com/DerekForgione/Projector/internal/logging"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code once every deferred cleanup has run.
func realMain() int {
	conf, err := config.Parse(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse configuration: %+v\n", err)
		return 1
	}

	surface := flag.String("surface", conf.Surface.Kind, "surface to use: term, prompt or html (auto when empty)")
	title := flag.String("title", conf.Surface.Title, "title shown by the term and html surfaces")
	definitions := flag.String("definitions", conf.Templates.Definitions, "directory of template definitions")
	openapi := flag.String("openapi", conf.Templates.OpenAPI, "OpenAPI document path or URL")
	operation := flag.String("operation", conf.Templates.Operation, "OpenAPI operation id to import")
	listOperations := flag.Bool("list-operations", false, "print the operation ids of the OpenAPI document and exit")
	themes := flag.String("themes", conf.Theme.Dir, "directory of theme manifests")
	themeName := flag.String("theme", conf.Theme.Name, "theme to select from the themes directory")
	variant := flag.String("variant", conf.Theme.Variant, "theme variant")
	out := flag.String("out", conf.Surface.Out, "output file for the html surface")
	outputDir := flag.String("output-dir", conf.Templates.OutputDir, "directory generated files are written to")
	generate := flag.String("generate", "", "generate the titled template after the surface finishes")
	rawLogLevel := flag.String("log-level", conf.Logger.Level.String(), "logging level")
	flag.Parse()

	conf.Surface.Title = *title
	conf.Templates.Definitions = *definitions
	conf.Templates.OpenAPI = *openapi
	conf.Templates.Operation = *operation
	conf.Templates.OutputDir = *outputDir
	conf.Theme.Dir = *themes
	conf.Theme.Name = *themeName
	conf.Theme.Variant = *variant
	conf.Surface.Out = *out
	if err := conf.Logger.Level.UnmarshalText([]byte(*rawLogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "could not parse log level: %v\n", err)
		return 1
	}

	kind := *surface
	if kind == "" {
		kind = app.SurfaceHTML
		if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
			kind = app.SurfaceTerm
		}
	}

	var logOut io.Writer = os.Stderr
	if kind == app.SurfaceTerm && !*listOperations {
		file, err := os.OpenFile(conf.Logger.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
			return 1
		}
		defer file.Close()
		logOut = file
	}
	logger := logging.New(logOut, conf.Logger.Level)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *listOperations {
		err = listOps(ctx, conf, os.Stdout)
	} else {
		err = run(ctx, conf, kind, *generate)
	}
	if err != nil {
		slog.ErrorContext(ctx, "projector failed", logging.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, conf *config.Config, surface, generate string) error {
	a, err := app.New(ctx, conf, app.WithLogger(slog.Default()))
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			slog.ErrorContext(ctx, "could not save app state", logging.Error(err))
		}
	}()

	if err := a.Run(ctx, surface); err != nil && !errors.Is(err, context.Canceled) {
		return errors.WithStack(err)
	}

	if generate != "" {
		if err := a.Generate(ctx, generate); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func listOps(ctx context.Context, conf *config.Config, w io.Writer) error {
	a, err := app.New(ctx, conf, app.WithLogger(slog.Default()))
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			slog.ErrorContext(ctx, "could not save app state", logging.Error(err))
		}
	}()

	ops, err := a.Operations()
	if err != nil {
		return errors.WithStack(err)
	}
	for _, op := range ops {
		if _, err := fmt.Fprintln(w, op); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
