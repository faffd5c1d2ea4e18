package hlog

import (
	"context"
	"log/slog"
)

type Logger = *slog.Logger

func NewLogger(h slog.Handler) Logger {
	return slog.New(h)
}

type loggerCtxKey struct{}

var nop = slog.New(slog.DiscardHandler)

// From returns the logger attached to ctx, or one that discards everything.
func From(ctx context.Context) Logger {
	l, ok := ctx.Value(loggerCtxKey{}).(Logger)
	if !ok {
		return nop
	}
	return l
}

func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// ContextWith attaches the logger from ctx, extended with args, to ctx.
func ContextWith(ctx context.Context, args ...any) context.Context {
	return ContextWithLogger(ctx, From(ctx).With(args...))
}
