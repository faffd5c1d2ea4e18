package sinkotel

import (
	"context"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const RecordsMetric = "console.records"

type instrumented struct {
	hconsole.Printer
	ctx     context.Context //nolint:containedctx
	records metric.Int64Counter
}

// Instrument counts every record handed to p, by level and outcome.
func Instrument(ctx context.Context, p hconsole.Printer, meter metric.Meter) (hconsole.Printer, error) {
	records, err := meter.Int64Counter(
		RecordsMetric,
		metric.WithDescription("Console records printed"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return instrumented{
		Printer: p,
		ctx:     ctx,
		records: records,
	}, nil
}

func (i instrumented) Print(level hconsole.Level, rec hconsole.Printable) error {
	err := i.Printer.Print(level, rec)

	i.records.Add(i.ctx, 1, metric.WithAttributes(
		attribute.String("level", level.String()),
		attribute.Bool("error", err != nil),
	))

	return err
}

func (i instrumented) Clear() {
	if c, ok := i.Printer.(hconsole.Clearer); ok {
		c.Clear()
	}
}
