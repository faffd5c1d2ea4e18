package hconsole

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

// Printable is what a Printer renders: either Values or a *Trace.
type Printable interface {
	printable()
}

// Values is a flat argument list handed to a Printer.
type Values []starlark.Value

func (Values) printable() {}

var _ Printable = Values(nil)
var _ Printable = (*Trace)(nil)

// Client is the sink a Console dispatches to. The default Logger algorithm
// lives in Pipeline; implementations are free to replace it.
type Client interface {
	Logger(level Level, args []starlark.Value) (starlark.Value, error)
	Printer(level Level, rec Printable) (starlark.Value, error)
	Formatter(args []starlark.Value) ([]starlark.Value, error)
	Clear()
}

// Printer is the terminal step of the pipeline: it renders or stores a
// finished record.
type Printer interface {
	Print(level Level, rec Printable) error
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(level Level, rec Printable) error

func (f PrinterFunc) Print(level Level, rec Printable) error {
	return f(level, rec)
}

// Clearer is implemented by printers that can wipe their output surface.
type Clearer interface {
	Clear()
}

// FormatterFunc rewrites an argument list whose first element contains a
// format specifier.
type FormatterFunc func(args []starlark.Value) ([]starlark.Value, error)

// IdentityFormatter returns args unchanged.
func IdentityFormatter(args []starlark.Value) ([]starlark.Value, error) {
	return args, nil
}

// Strings converts every value with conv.
func (v Values) Strings(conv Converter) ([]string, error) {
	if conv == nil {
		conv = DefaultConverter
	}

	out := make([]string, 0, len(v))
	for _, value := range v {
		s, err := conv.ToString(value)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// Message renders a record on a single line, values separated by a space.
func Message(rec Printable, conv Converter) (string, error) {
	switch rec := rec.(type) {
	case Values:
		parts, err := rec.Strings(conv)
		if err != nil {
			return "", err
		}

		return strings.Join(parts, " "), nil
	case *Trace:
		return rec.Title(), nil
	default:
		return "", fmt.Errorf("unsupported record %T", rec)
	}
}
