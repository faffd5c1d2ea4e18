// Package sink holds what the structured sinks have in common.
package sink

import (
	"time"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hstarlark"
	"go.starlark.net/starlark"
)

// Record is the encoded form of a printed console record.
type Record struct {
	Time     time.Time      `json:"time"               cbor:"1,keyasint"`
	RunID    string         `json:"run_id,omitempty"   cbor:"2,keyasint,omitempty"`
	Level    hconsole.Level `json:"level"              cbor:"3,keyasint"`
	Message  string         `json:"message"            cbor:"4,keyasint"`
	Args     []any          `json:"args,omitempty"     cbor:"5,keyasint,omitempty"`
	Label    string         `json:"label,omitempty"    cbor:"6,keyasint,omitempty"`
	Stack    []string       `json:"stack,omitempty"    cbor:"7,keyasint,omitempty"`
	HasLabel bool           `json:"has_label,omitempty" cbor:"8,keyasint,omitempty"`
}

// Clock returns the current time.
type Clock func() time.Time

func NewRecord(now Clock, runID string, level hconsole.Level, rec hconsole.Printable) (Record, error) {
	if now == nil {
		now = time.Now
	}

	msg, err := hconsole.Message(rec, hconsole.DefaultConverter)
	if err != nil {
		return Record{}, err
	}

	r := Record{
		Time:    now(),
		RunID:   runID,
		Level:   level,
		Message: msg,
	}

	switch rec := rec.(type) {
	case hconsole.Values:
		r.Args = make([]any, 0, len(rec))
		for _, v := range rec {
			r.Args = append(r.Args, hstarlark.FromStarlark(v))
		}
	case *hconsole.Trace:
		r.Label = rec.Label
		r.HasLabel = rec.HasLabel
		r.Stack = rec.Stack
	}

	return r, nil
}

// Printable turns a decoded record back into something a hconsole.Printer
// accepts.
func (r Record) Printable() hconsole.Printable {
	if r.Level == hconsole.TraceLevel {
		return &hconsole.Trace{
			Label:    r.Label,
			HasLabel: r.HasLabel,
			Stack:    r.Stack,
		}
	}

	values := make(hconsole.Values, 0, len(r.Args))
	for _, arg := range r.Args {
		values = append(values, hstarlark.FromGo(arg))
	}
	if len(values) == 0 {
		values = append(values, starlark.String(r.Message))
	}

	return values
}
