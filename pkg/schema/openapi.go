package schema

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/DerekForgione/Projector/pkg/form"
)

// ErrOperationNotFound is returned when the document has no operation with
// the requested id.
var ErrOperationNotFound = errors.New("schema: operation not found")

// Operation is one OpenAPI operation with its request body as a form.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Form        *form.Form
}

// Option configures document loading.
type Option func(*options)

type options struct {
	externalRefs bool
	validate     bool
}

// WithExternalRefs allows $ref to other documents.
func WithExternalRefs(allowed bool) Option {
	return func(o *options) {
		o.externalRefs = allowed
	}
}

// WithValidation toggles document validation. It is on by default.
func WithValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

// Parse loads and, unless disabled, validates an OpenAPI document. External
// references, when allowed, resolve against the working directory.
func Parse(ctx context.Context, data []byte, opts ...Option) (*Document, error) {
	return parse(ctx, data, nil, opts...)
}

func parse(ctx context.Context, data []byte, location *url.URL, opts ...Option) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("schema: document payload is empty")
	}
	cfg := options{validate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	var (
		spec *openapi3.T
		err  error
	)
	if location != nil {
		spec, err = loader.LoadFromDataWithPath(data, location)
	} else {
		spec, err = loader.LoadFromData(data)
	}
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("schema: validate: %w", err)
		}
	}
	return &Document{spec: spec}, nil
}

// walkOperations visits operations in path then method order until fn
// returns false.
func walkOperations(spec *openapi3.T, fn func(id, method, path string, op *openapi3.Operation) bool) {
	if spec.Paths == nil {
		return
	}
	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, entry := range []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", item.Get},
			{"PUT", item.Put},
			{"POST", item.Post},
			{"DELETE", item.Delete},
			{"PATCH", item.Patch},
			{"HEAD", item.Head},
			{"OPTIONS", item.Options},
			{"TRACE", item.Trace},
		} {
			if entry.op == nil {
				continue
			}
			id := entry.op.OperationID
			if id == "" {
				id = strings.ToLower(entry.method) + ":" + path
			}
			if !fn(id, entry.method, path, entry.op) {
				return
			}
		}
	}
}

func requestForm(operationID string, body *openapi3.RequestBodyRef) *form.Form {
	if body == nil || body.Value == nil {
		return form.New()
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return newConverter(operationID).form(mt.Schema, "")
		}
	}
	mediaTypes := make([]string, 0, len(content))
	for mediaType := range content {
		mediaTypes = append(mediaTypes, mediaType)
	}
	sort.Strings(mediaTypes)
	for _, mediaType := range mediaTypes {
		if mt := content[mediaType]; mt != nil {
			return newConverter(operationID).form(mt.Schema, "")
		}
	}
	return form.New()
}
