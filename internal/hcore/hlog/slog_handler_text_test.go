package hlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hephbuild/starconsole/internal/hcore/hlog"
	"github.com/hephbuild/starconsole/internal/hcore/hlog/hlogtest"
	"github.com/stretchr/testify/assert"
)

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar

	logger := hlog.NewTextLogger(&buf, &lvl)

	logger.Debug("hidden")
	logger.With("run", "abc").Info("started", "file", "main.star")
	logger.WithGroup("sink").Warn("slow", "name", "json")

	assert.Equal(t, "INFO started run=abc file=main.star\nWARN slow sink.name=json\n", buf.String())

	buf.Reset()
	lvl.Set(slog.LevelDebug)
	logger.Debug("shown")

	assert.Equal(t, "DEBUG shown\n", buf.String())
}

func TestContext(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, hlog.From(ctx))

	l := hlogtest.NewLogger(t)
	ctx = hlog.ContextWithLogger(ctx, l)

	assert.Same(t, l, hlog.From(ctx))
}

func TestContextWith(t *testing.T) {
	var buf bytes.Buffer

	ctx := hlog.ContextWithLogger(context.Background(), hlog.NewTextLogger(&buf, slog.LevelInfo))
	ctx = hlog.ContextWith(ctx, "run_id", "abc")

	hlog.From(ctx).Info("done")

	assert.Equal(t, "INFO done run_id=abc\n", buf.String())
}
