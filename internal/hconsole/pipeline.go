package hconsole

import (
	"strings"

	"go.starlark.net/starlark"
)

type Option interface {
	do(*Pipeline)
}

type optionFunc func(*Pipeline)

func (f optionFunc) do(p *Pipeline) {
	f(p)
}

// WithFormatter replaces the identity formatter.
func WithFormatter(f FormatterFunc) Option {
	return optionFunc(func(p *Pipeline) {
		p.formatter = f
	})
}

// WithConverter replaces the value conversion used to look for format
// specifiers.
func WithConverter(c Converter) Option {
	return optionFunc(func(p *Pipeline) {
		p.conv = c
	})
}

// Pipeline is a Client running the default Logger algorithm on top of a
// Printer.
type Pipeline struct {
	printer   Printer
	formatter FormatterFunc
	conv      Converter
}

var _ Client = (*Pipeline)(nil)

func NewPipeline(printer Printer, opts ...Option) *Pipeline {
	p := &Pipeline{
		printer:   printer,
		formatter: IdentityFormatter,
		conv:      DefaultConverter,
	}
	for _, opt := range opts {
		opt.do(p)
	}

	return p
}

func (p *Pipeline) Logger(level Level, args []starlark.Value) (starlark.Value, error) {
	if len(args) == 0 {
		return starlark.None, nil
	}

	first := args[0]

	if len(args) == 1 {
		return p.Printer(level, Values{first})
	}

	s, err := p.conv.ToString(first)
	if err != nil {
		return nil, err
	}

	if !strings.Contains(s, "%") {
		_, err := p.Printer(level, Values(args))
		if err != nil {
			return nil, err
		}
	} else {
		formatted, err := p.Formatter(args)
		if err != nil {
			return nil, err
		}

		_, err = p.Printer(level, Values(formatted))
		if err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

func (p *Pipeline) Printer(level Level, rec Printable) (starlark.Value, error) {
	err := p.printer.Print(level, rec)
	if err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (p *Pipeline) Formatter(args []starlark.Value) ([]starlark.Value, error) {
	return p.formatter(args)
}

func (p *Pipeline) Clear() {
	if c, ok := p.printer.(Clearer); ok {
		c.Clear()
	}
}
