package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DerekForgione/Projector/pkg/form"
	"github.com/DerekForgione/Projector/pkg/project"
	"github.com/DerekForgione/Projector/pkg/testsupport"
)

func TestBundledDefinitions(t *testing.T) {
	dir := t.TempDir()
	templates, err := project.LoadFS(os.DirFS(filepath.Join("..", "..", "examples", "definitions")), project.WithOutputDir(dir))
	if err != nil {
		t.Fatalf("load bundled definitions: %v", err)
	}

	var titles []string
	for _, tpl := range templates {
		titles = append(titles, tpl.Title())
	}
	if diff := cmp.Diff([]string{"Changelog", "Readme", "Go Service"}, titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	readme := templates[1]
	license, _ := readme.Form().Field("license")
	opt := license.Value().(*form.Optional)
	opt.Present = true
	opt.Inner.(*form.Choice).Select(1)

	for _, tpl := range templates {
		if err := tpl.Generate(context.Background()); err != nil {
			t.Fatalf("generate %s: %v", tpl.Title(), err)
		}
	}

	got := testsupport.MustReadFile(t, filepath.Join(dir, "README.md"))
	if diff := cmp.Diff("# projector\n\n\n\nLicensed under Apache-2.0.\n", got); diff != "" {
		t.Fatalf("readme mismatch (-want +got):\n%s", diff)
	}
	got = testsupport.MustReadFile(t, filepath.Join(dir, "CHANGELOG.md"))
	if diff := cmp.Diff("# Changelog\n\n## 0.1.0\n\n### Added\n\n- Initial release & docs\n", got); diff != "" {
		t.Fatalf("changelog mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "billing-api", "service.yaml")); err != nil {
		t.Fatalf("service descriptor missing: %v", err)
	}
}
