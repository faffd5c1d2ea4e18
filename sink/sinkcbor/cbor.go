package sinkcbor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/sink"
)

const Name = "cbor"

// Ext is the conventional extension of record files.
const Ext = ".clog"

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor enc mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor dec mode: %v", err))
	}
}

type Options struct {
	RunID string
	Clock sink.Clock
}

// Printer appends CBOR encoded records to a writer.
type Printer struct {
	opts Options

	mu     sync.Mutex
	enc    *cbor.Encoder
	closer io.Closer
	closed bool
}

var _ hconsole.Printer = (*Printer)(nil)

func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		opts: opts,
		enc:  encMode.NewEncoder(w),
	}
}

// NewFile appends to path, creating it with 0644 permissions.
func NewFile(path string, opts Options) (*Printer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	p := New(f, opts)
	p.closer = f

	return p, nil
}

var ErrClosed = errors.New("record file closed")

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	r, err := sink.NewRecord(p.opts.Clock, p.opts.RunID, level, rec)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	return p.enc.Encode(r)
}

// Close is safe to call more than once.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.closer != nil {
		return p.closer.Close()
	}

	return nil
}

func Encode(r sink.Record) ([]byte, error) {
	return encMode.Marshal(r)
}

func Decode(b []byte) (sink.Record, error) {
	var r sink.Record
	if err := decMode.Unmarshal(b, &r); err != nil {
		return sink.Record{}, err
	}

	return r, nil
}

// Read decodes every record from r.
func Read(r io.Reader, f func(sink.Record) error) error {
	dec := decMode.NewDecoder(r)
	for {
		var rec sink.Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
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
