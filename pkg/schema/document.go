package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a parsed OpenAPI document. Operations are converted to forms
// on demand, so one document serves any number of lookups.
type Document struct {
	location string
	spec     *openapi3.T
}

// Open reads the document at location, a file path or an http(s) URL, and
// parses it.
func Open(ctx context.Context, location string, opts ...Option) (*Document, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("schema: document location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		path *url.URL
		err  error
	)
	if u, ok := httpURL(location); ok {
		path = u
		data, err = fetch(ctx, location)
	} else {
		path = &url.URL{Path: filepath.ToSlash(location)}
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", location, err)
	}

	doc, err := parse(ctx, data, path, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	doc.location = location
	return doc, nil
}

// Location is the path or URL the document was opened from. Parsed
// documents have none.
func (d *Document) Location() string { return d.location }

// Title returns the info title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Operations lists the operation ids, sorted. Operations without an
// operationId are addressed as "method:path" with a lower case method.
func (d *Document) Operations() []string {
	var ids []string
	walkOperations(d.spec, func(id, _, _ string, _ *openapi3.Operation) bool {
		ids = append(ids, id)
		return true
	})
	sort.Strings(ids)
	return ids
}

// Operation converts the request body of operationID into a form.
func (d *Document) Operation(operationID string) (*Operation, error) {
	var found *Operation
	walkOperations(d.spec, func(id, method, path string, op *openapi3.Operation) bool {
		if id != operationID {
			return true
		}
		found = &Operation{
			ID:          id,
			Method:      method,
			Path:        path,
			Summary:     op.Summary,
			Description: op.Description,
			Form:        requestForm(id, op.RequestBody),
		}
		return false
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return found, nil
}

func httpURL(location string) (*url.URL, bool) {
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}
	return u, true
}

func fetch(ctx context.Context, raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
