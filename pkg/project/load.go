package project

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/DerekForgione/Projector/pkg/schema"
)

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	example     bool
	definitions fs.FS
	openapi     *schema.Document
	operationID string
	defined     []DefinedOption
}

// WithDefinitions registers every definition file found in fsys.
func WithDefinitions(fsys fs.FS) LoadOption {
	return func(cfg *loadConfig) {
		cfg.definitions = fsys
	}
}

// WithOpenAPI registers the request body of operationID in doc as a
// template that writes JSON.
func WithOpenAPI(doc *schema.Document, operationID string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.openapi = doc
		cfg.operationID = operationID
	}
}

// WithDefinedOptions applies opts to every loaded template.
func WithDefinedOptions(opts ...DefinedOption) LoadOption {
	return func(cfg *loadConfig) {
		cfg.defined = append(cfg.defined, opts...)
	}
}

// WithoutExample leaves the bundled example out of the registry.
func WithoutExample() LoadOption {
	return func(cfg *loadConfig) {
		cfg.example = false
	}
}

// Load builds the startup registry: the example first, then definitions in
// path order, then the OpenAPI operation.
func Load(ctx context.Context, opts ...LoadOption) (*Registry, error) {
	cfg := loadConfig{example: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	reg := NewRegistry()
	if cfg.example {
		reg.MustAdd(NewExample())
	}

	defined, err := LoadFS(cfg.definitions, cfg.defined...)
	if err != nil {
		return nil, err
	}
	for _, tpl := range defined {
		if _, exists := reg.Find(tpl.Title()); exists {
			return nil, fmt.Errorf("project: duplicate template %q", tpl.Title())
		}
		reg.MustAdd(tpl)
	}

	if cfg.openapi != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		op, err := cfg.openapi.Operation(cfg.operationID)
		if err != nil {
			return nil, fmt.Errorf("project: import operation: %w", err)
		}
		title := op.Summary
		if title == "" {
			title = op.ID
		}
		if _, exists := reg.Find(title); exists {
			return nil, fmt.Errorf("project: duplicate template %q", title)
		}
		tpl, err := NewDefined(title, op.Description, op.Form, Output{Format: FormatJSON}, cfg.defined...)
		if err != nil {
			return nil, err
		}
		reg.MustAdd(tpl)
	}
	return reg, nil
}
