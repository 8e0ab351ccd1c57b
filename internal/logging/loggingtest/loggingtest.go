// Package loggingtest routes structured logs through testing.TB so they only
// show up for failing or verbose tests.
package loggingtest

import (
	"log/slog"
	"testing"

	"github.com/DerekForgione/Projector/internal/logging"
)

// Writer forwards log lines to t.Log.
type Writer struct {
	t testing.TB
}

func (w *Writer) Write(p []byte) (n int, err error) {
	size := len(p)
	if size > 0 && p[size-1] == '\n' {
		p = p[:size-1]
	}

	w.t.Logf("%s", p)

	return size, nil
}

// New returns a debug logger that writes through t. Timestamps are dropped.
func New(t testing.TB) *slog.Logger {
	t.Helper()

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	return slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&Writer{t: t}, opts)})
}
