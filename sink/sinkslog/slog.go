package sinkslog

import (
	"context"
	"log/slog"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hcore/hlog"
)

const Name = "slog"

const LevelKey = "console.level"
const StackKey = "stack"

// SlogLevel maps a console level onto the closest slog level.
func SlogLevel(level hconsole.Level) slog.Level {
	switch level {
	case hconsole.DebugLevel:
		return slog.LevelDebug
	case hconsole.WarnLevel:
		return slog.LevelWarn
	case hconsole.ErrorLevel, hconsole.AssertLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Printer forwards records to a slog logger.
type Printer struct {
	ctx    context.Context //nolint:containedctx
	logger hlog.Logger
	conv   hconsole.Converter
}

var _ hconsole.Printer = (*Printer)(nil)

// New uses the logger carried by ctx when logger is nil.
func New(ctx context.Context, logger hlog.Logger) *Printer {
	if logger == nil {
		logger = hlog.From(ctx)
	}

	return &Printer{
		ctx:    ctx,
		logger: logger,
		conv:   hconsole.DefaultConverter,
	}
}

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	lvl := SlogLevel(level)
	if !p.logger.Enabled(p.ctx, lvl) {
		return nil
	}

	msg, err := hconsole.Message(rec, p.conv)
	if err != nil {
		return err
	}

	attrs := []slog.Attr{slog.String(LevelKey, level.String())}
	if trace, ok := rec.(*hconsole.Trace); ok {
		attrs = append(attrs, slog.Any(StackKey, trace.Stack))
	}

	p.logger.LogAttrs(p.ctx, lvl, msg, attrs...)

	return nil
}
