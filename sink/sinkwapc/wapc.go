package sinkwapc

import (
	"errors"
	"fmt"

	"github.com/hephbuild/starconsole/internal/hconsole"
)

const Name = "wapc"

const (
	DefaultNamespace = "tarmac"
	Capability       = "logging"
)

// ErrUnsupported is returned by New when no HostCall is given outside a waPC
// guest.
var ErrUnsupported = errors.New("wapc: unsupported outside a waPC guest")

type HostCall func(namespace, capability, fn string, payload []byte) ([]byte, error)

type Config struct {
	Namespace string
	// HostCall overrides the waPC host function, required unless running as
	// a waPC guest.
	HostCall  HostCall
	Converter hconsole.Converter
}

// Printer forwards rendered records to the host logging capability.
type Printer struct {
	namespace string
	hostCall  HostCall
	conv      hconsole.Converter
}

var _ hconsole.Printer = (*Printer)(nil)

func New(cfg Config) (*Printer, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.HostCall == nil {
		if defaultHostCall == nil {
			return nil, ErrUnsupported
		}
		cfg.HostCall = defaultHostCall
	}
	if cfg.Converter == nil {
		cfg.Converter = hconsole.DefaultConverter
	}

	return &Printer{
		namespace: cfg.Namespace,
		hostCall:  cfg.HostCall,
		conv:      cfg.Converter,
	}, nil
}

func Function(level hconsole.Level) string {
	switch level {
	case hconsole.DebugLevel:
		return "Debug"
	case hconsole.WarnLevel:
		return "Warn"
	case hconsole.ErrorLevel, hconsole.AssertLevel:
		return "Error"
	case hconsole.TraceLevel:
		return "Trace"
	default:
		return "Info"
	}
}

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	var msg string
	if trace, ok := rec.(*hconsole.Trace); ok {
		msg = trace.String()
	} else {
		var err error
		msg, err = hconsole.Message(rec, p.conv)
		if err != nil {
			return err
		}
	}

	fn := Function(level)

	_, err := p.hostCall(p.namespace, Capability, fn, []byte(msg))
	if err != nil {
		return fmt.Errorf("%v/%v/%v: %w", p.namespace, Capability, fn, err)
	}

	return nil
}
