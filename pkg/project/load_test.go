package project_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/DerekForgione/Projector/pkg/project"
	"github.com/DerekForgione/Projector/pkg/schema"
)

const petsDocument = `{
  "openapi": "3.0.3",
  "info": { "title": "Pets", "version": "1.0.0" },
  "paths": {
    "/pets": {
      "post": {
        "operationId": "createPet",
        "summary": "Create pet",
        "description": "Registers a pet.",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name"],
                "properties": { "name": { "type": "string" }, "age": { "type": "integer", "minimum": 0 } }
              }
            }
          }
        },
        "responses": { "201": { "description": "created" } }
      }
    }
  }
}`

func petsDoc(t *testing.T) *schema.Document {
	t.Helper()
	doc, err := schema.Parse(context.Background(), []byte(petsDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func titles(reg *project.Registry) []string {
	var out []string
	for _, tpl := range reg.All() {
		out = append(out, tpl.Title())
	}
	return out
}

func TestLoad_DefaultRegistersExample(t *testing.T) {
	reg, err := project.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Example Template"}, titles(reg)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_AllSources(t *testing.T) {
	fsys := fstest.MapFS{"library.json": {Data: []byte(libraryJSON)}}
	dir := t.TempDir()
	reg, err := project.Load(context.Background(),
		project.WithDefinitions(fsys),
		project.WithOpenAPI(petsDoc(t), "createPet"),
		project.WithDefinedOptions(project.WithOutputDir(dir)),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Example Template", "Library", "Create pet"}, titles(reg)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	tpl, _ := reg.Find("Create pet")
	pet := tpl.(*project.Defined)
	if pet.Description() != "Registers a pet." || pet.Output().Format != project.FormatJSON {
		t.Fatalf("unexpected operation template: %q %q", pet.Description(), pet.Output().Format)
	}
	if err := pet.Generate(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if want := filepath.Join(dir, "create-pet.json"); pet.LastOutput() != want {
		t.Fatalf("want %s, got %s", want, pet.LastOutput())
	}
}

func TestLoad_WithoutExample(t *testing.T) {
	reg, err := project.Load(context.Background(), project.WithoutExample())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("want empty registry, got %v", titles(reg))
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := project.Load(context.Background(), project.WithOpenAPI(petsDoc(t), "deletePet"))
	if !errors.Is(err, schema.ErrOperationNotFound) {
		t.Fatalf("want ErrOperationNotFound, got %v", err)
	}

	clash := fstest.MapFS{"x.yaml": {Data: []byte("title: Example Template\n")}}
	if _, err := project.Load(context.Background(), project.WithDefinitions(clash)); err == nil {
		t.Fatalf("expected duplicate title error")
	}
}
