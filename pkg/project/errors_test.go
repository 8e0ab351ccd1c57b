package project_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/DerekForgione/Projector/pkg/project"
)

func TestError_KindsMatchSentinels(t *testing.T) {
	cases := []struct {
		name string
		err  *project.Error
		want error
		text string
	}{
		{"already exists", project.AlreadyExists("out.yaml"), project.ErrAlreadyExists, "project: already exists: out.yaml"},
		{"invalid permission", project.InvalidPermission("out"), project.ErrInvalidPermission, "project: invalid permission: out"},
		{"unknown", project.Unknown(""), project.ErrUnknown, "project: unknown"},
	}
	sentinels := []error{project.ErrAlreadyExists, project.ErrInvalidPermission, project.ErrUnknown}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Error() != tc.text {
				t.Fatalf("message: want %q, got %q", tc.text, tc.err.Error())
			}
			for _, sentinel := range sentinels {
				if got := errors.Is(tc.err, sentinel); got != (sentinel == tc.want) {
					t.Fatalf("errors.Is(%v) = %v", sentinel, got)
				}
			}
		})
	}
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := project.AlreadyExists("out.yaml").Wrap(fs.ErrExist)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("cause lost: %v", err)
	}
	if err.Error() != "project: already exists: out.yaml: file already exists" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	var perr *project.Error
	if !errors.As(error(err), &perr) || perr.Kind != project.KindAlreadyExists {
		t.Fatalf("errors.As did not recover the kind")
	}
}
