// Package hconsoletest provides a Client that records everything it is
// asked to do.
package hconsoletest

import (
	"github.com/hephbuild/starconsole/internal/hconsole"
	"go.starlark.net/starlark"
)

type Method string

const (
	MethodLogger    Method = "logger"
	MethodPrinter   Method = "printer"
	MethodFormatter Method = "formatter"
	MethodClear     Method = "clear"
)

type Call struct {
	Method Method
	Level  hconsole.Level
	Args   []starlark.Value
	Trace  *hconsole.Trace
}

type Record struct {
	Level hconsole.Level
	Rec   hconsole.Printable
}

// Recorder is a hconsole.Client running the default pipeline and recording
// every call. Setting one of the *Err fields makes the matching step fail.
type Recorder struct {
	LoggerErr    error
	PrinterErr   error
	FormatterErr error

	// Format replaces the identity formatter when set.
	Format hconsole.FormatterFunc

	Calls   []Call
	Records []Record
	Clears  int
}

var _ hconsole.Client = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) pipeline() *hconsole.Pipeline {
	return hconsole.NewPipeline(hconsole.PrinterFunc(r.print), hconsole.WithFormatter(r.Formatter))
}

func (r *Recorder) print(level hconsole.Level, rec hconsole.Printable) error {
	call := Call{Method: MethodPrinter, Level: level}
	switch rec := rec.(type) {
	case hconsole.Values:
		call.Args = rec
	case *hconsole.Trace:
		call.Trace = rec
	}
	r.Calls = append(r.Calls, call)

	if r.PrinterErr != nil {
		return r.PrinterErr
	}

	r.Records = append(r.Records, Record{Level: level, Rec: rec})

	return nil
}

func (r *Recorder) Logger(level hconsole.Level, args []starlark.Value) (starlark.Value, error) {
	r.Calls = append(r.Calls, Call{Method: MethodLogger, Level: level, Args: args})

	if r.LoggerErr != nil {
		return nil, r.LoggerErr
	}

	return r.pipeline().Logger(level, args)
}

func (r *Recorder) Printer(level hconsole.Level, rec hconsole.Printable) (starlark.Value, error) {
	if err := r.print(level, rec); err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (r *Recorder) Formatter(args []starlark.Value) ([]starlark.Value, error) {
	r.Calls = append(r.Calls, Call{Method: MethodFormatter, Args: args})

	if r.FormatterErr != nil {
		return nil, r.FormatterErr
	}

	if r.Format != nil {
		return r.Format(args)
	}

	return hconsole.IdentityFormatter(args)
}

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, Call{Method: MethodClear})
	r.Clears++
}

// Methods returns the sequence of client methods invoked so far.
func (r *Recorder) Methods() []Method {
	methods := make([]Method, 0, len(r.Calls))
	for _, c := range r.Calls {
		methods = append(methods, c.Method)
	}

	return methods
}

// LoggerCalls returns the logger invocations only.
func (r *Recorder) LoggerCalls() []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Method == MethodLogger {
			calls = append(calls, c)
		}
	}

	return calls
}

// Last returns the last printed record, ok is false when nothing was printed.
func (r *Recorder) Last() (Record, bool) {
	if len(r.Records) == 0 {
		return Record{}, false
	}

	return r.Records[len(r.Records)-1], true
}

func (r *Recorder) Reset() {
	r.Calls = nil
	r.Records = nil
	r.Clears = 0
}
