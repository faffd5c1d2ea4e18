package sinklogr

import (
	"github.com/go-logr/logr"
	"github.com/hephbuild/starconsole/internal/hconsole"
)

const Name = "logr"

// DebugVerbosity is the V level debug records are logged at.
const DebugVerbosity = 1

// Printer forwards records to a logr.Logger.
type Printer struct {
	logger logr.Logger
}

var _ hconsole.Printer = (*Printer)(nil)

func New(logger logr.Logger) *Printer {
	return &Printer{logger: logger}
}

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	msg, err := hconsole.Message(rec, hconsole.DefaultConverter)
	if err != nil {
		return err
	}

	kv := []any{"console.level", level.String()}
	if trace, ok := rec.(*hconsole.Trace); ok {
		kv = append(kv, "stack", trace.Stack)
	}

	switch level {
	case hconsole.DebugLevel:
		p.logger.V(DebugVerbosity).Info(msg, kv...)
	case hconsole.ErrorLevel, hconsole.AssertLevel:
		p.logger.Error(nil, msg, kv...)
	default:
		p.logger.Info(msg, kv...)
	}

	return nil
}
