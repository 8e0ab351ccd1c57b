package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DerekForgione/Projector/pkg/form"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// SampleForm returns a form holding one field of every value kind, in a fixed
// order. Every call builds fresh values.
func SampleForm() *form.Form {
	text := form.NewText().WithLength(0, 32)
	text.Value = "hello"

	choice := form.NewChoice("One", "Two", "Three")
	choice.Select(1)

	options := form.NewMultiOption("red", "green", "blue")
	options.Options[2].Checked = true

	return form.New(
		form.NewField("enabled", "Enabled", form.NewBoolean(true)),
		form.NewField("count", "Count", form.NewInteger(-5, 5)),
		form.NewField("size", "Size", form.NewUnsigned(1, 8)),
		form.NewField("ratio", "Ratio", form.NewReal(0, 1)),
		form.NewField("name", "Name", text),
		form.NewField("path", "Path", form.NewFile("/tmp/out")),
		form.NewField("pick", "Pick", choice),
		form.NewField("colors", "Colors", options),
		form.NewField("nested", "Nested", form.NewStruct(
			form.NewField("flag", "Flag", form.NewBoolean(false)),
		)),
		form.NewField("extra", "Extra", form.NewOptionalStruct(
			form.NewField("note", "Note", form.NewMultiline()),
		)),
		form.NewField("maybe", "Maybe", form.NewOptional(form.NewInteger(0, 3))),
		form.NewField("broken", "Broken", nil),
	)
}

// WriteFiles writes name/content pairs below dir, creating parents.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// MustReadFile returns the content of path.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// CompareValues returns a diff when two form snapshots differ.
func CompareValues(want, got map[string]any) string {
	return cmp.Diff(want, got)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
