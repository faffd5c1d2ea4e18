// Package hlogtest routes logs to the test output.
package hlogtest

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/hephbuild/starconsole/internal/hcore/hlog"
)

func NewLogger(t testing.TB) hlog.Logger {
	return hlog.NewLogger(handler{
		t:        t,
		renderer: hlog.NewRenderer(io.Discard),
	})
}

// NewContext returns a context carrying NewLogger(t).
func NewContext(t testing.TB) context.Context {
	return hlog.ContextWithLogger(context.Background(), NewLogger(t))
}

type handler struct {
	t        testing.TB
	attrs    []slog.Attr
	renderer hlog.Renderer
}

func (h handler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h handler) Handle(ctx context.Context, record slog.Record) error {
	h.t.Helper()
	h.t.Log(hlog.FormatRecord(h.renderer, record, h.attrs...))

	return nil
}

func (h handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.attrs = append(slices.Clone(h.attrs), attrs...)

	return h
}

func (h handler) WithGroup(name string) slog.Handler {
	return h
}
