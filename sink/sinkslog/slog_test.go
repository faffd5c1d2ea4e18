package sinkslog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hcore/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func newLogger(buf *bytes.Buffer, level slog.Level) hlog.Logger {
	return hlog.NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	p := New(context.Background(), newLogger(&buf, slog.LevelDebug))

	require.NoError(t, p.Print(hconsole.AssertLevel, hconsole.Values{starlark.String("Assertion failed")}))
	assert.Equal(t, "level=ERROR msg=\"Assertion failed\" console.level=assert\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Print(hconsole.TraceLevel, &hconsole.Trace{Stack: []string{"f", "<toplevel>"}}))
	assert.Equal(t, "level=INFO msg=console.trace() console.level=trace stack=\"[f <toplevel>]\"\n", buf.String())
}

func TestPrintDisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	p := New(context.Background(), newLogger(&buf, slog.LevelInfo))

	require.NoError(t, p.Print(hconsole.DebugLevel, hconsole.Values{starlark.String("hidden")}))
	assert.Empty(t, buf.String())
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := hlog.ContextWithLogger(context.Background(), newLogger(&buf, slog.LevelDebug))

	p := New(ctx, nil)
	require.NoError(t, p.Print(hconsole.WarnLevel, hconsole.Values{starlark.String("w")}))
	assert.Equal(t, "level=WARN msg=w console.level=warn\n", buf.String())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, SlogLevel(hconsole.DebugLevel))
	assert.Equal(t, slog.LevelInfo, SlogLevel(hconsole.CountLevel))
	assert.Equal(t, slog.LevelWarn, SlogLevel(hconsole.WarnLevel))
	assert.Equal(t, slog.LevelError, SlogLevel(hconsole.ErrorLevel))
}
