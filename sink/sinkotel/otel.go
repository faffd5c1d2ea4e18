package sinkotel

import (
	"context"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hstarlark"
	"github.com/hephbuild/starconsole/sink"
	"go.opentelemetry.io/otel/log"
	"go.starlark.net/starlark"
)

const Name = "otel"

// ScopeName is the instrumentation scope records are emitted under.
const ScopeName = "github.com/hephbuild/starconsole"

const (
	LevelKey = "console.level"
	RunIDKey = "console.run_id"
	ArgsKey  = "console.args"
	StackKey = "console.stack"
)

func Severity(level hconsole.Level) log.Severity {
	switch level {
	case hconsole.DebugLevel:
		return log.SeverityDebug
	case hconsole.WarnLevel:
		return log.SeverityWarn
	case hconsole.ErrorLevel, hconsole.AssertLevel:
		return log.SeverityError
	default:
		return log.SeverityInfo
	}
}

type Options struct {
	RunID string
	Clock sink.Clock
}

// Printer emits records as OpenTelemetry log records.
type Printer struct {
	ctx    context.Context //nolint:containedctx
	logger log.Logger
	opts   Options
}

var _ hconsole.Printer = (*Printer)(nil)

func New(ctx context.Context, provider log.LoggerProvider, opts Options) *Printer {
	return &Printer{
		ctx:    ctx,
		logger: provider.Logger(ScopeName),
		opts:   opts,
	}
}

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	r, err := sink.NewRecord(p.opts.Clock, p.opts.RunID, level, rec)
	if err != nil {
		return err
	}

	var lr log.Record
	lr.SetTimestamp(r.Time)
	lr.SetSeverity(Severity(level))
	lr.SetSeverityText(level.String())
	lr.SetBody(log.StringValue(r.Message))
	lr.AddAttributes(log.String(LevelKey, level.String()))

	if r.RunID != "" {
		lr.AddAttributes(log.String(RunIDKey, r.RunID))
	}

	if values, ok := rec.(hconsole.Values); ok && len(values) > 1 {
		args := make([]log.Value, 0, len(values))
		for _, v := range values {
			args = append(args, Value(v))
		}
		lr.AddAttributes(log.Slice(ArgsKey, args...))
	}

	if len(r.Stack) > 0 {
		stack := make([]log.Value, 0, len(r.Stack))
		for _, frame := range r.Stack {
			stack = append(stack, log.StringValue(frame))
		}
		lr.AddAttributes(log.Slice(StackKey, stack...))
	}

	p.logger.Emit(p.ctx, lr)

	return nil
}

// Value converts a Starlark value into an OpenTelemetry log value.
func Value(v starlark.Value) log.Value {
	return goValue(hstarlark.FromStarlark(v))
}

func goValue(v any) log.Value {
	switch v := v.(type) {
	case nil:
		return log.Value{}
	case string:
		return log.StringValue(v)
	case bool:
		return log.BoolValue(v)
	case int64:
		return log.Int64Value(v)
	case float64:
		return log.Float64Value(v)
	case []any:
		values := make([]log.Value, 0, len(v))
		for _, e := range v {
			values = append(values, goValue(e))
		}
		return log.SliceValue(values...)
	case map[string]any:
		kvs := make([]log.KeyValue, 0, len(v))
		for k, e := range v {
			kvs = append(kvs, log.KeyValue{Key: k, Value: goValue(e)})
		}
		return log.MapValue(kvs...)
	default:
		return log.StringValue("")
	}
}
