package sinkjson

import (
	"io"
	"sync"

	"github.com/goccy/go-json"
	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/sink"
)

const Name = "json"

type Options struct {
	RunID string
	Clock sink.Clock
}

// Printer writes one JSON document per record.
type Printer struct {
	opts Options

	mu  sync.Mutex
	enc *json.Encoder
}

var _ hconsole.Printer = (*Printer)(nil)

func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		opts: opts,
		enc:  json.NewEncoder(w),
	}
}

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	r, err := sink.NewRecord(p.opts.Clock, p.opts.RunID, level, rec)
	if err != nil {
		return err
	}

	return p.Write(r)
}

// Write encodes an already built record.
func (p *Printer) Write(r sink.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.enc.Encode(r)
}

// Read decodes every record from r.
func Read(r io.Reader, f func(sink.Record) error) error {
	dec := json.NewDecoder(r)
	for {
		var rec sink.Record
		err := dec.Decode(&rec)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := f(rec); err != nil {
			return err
		}
	}
}
