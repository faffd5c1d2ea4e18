package sinktee

import (
	"github.com/hephbuild/starconsole/internal/hconsole"
	"go.uber.org/multierr"
)

const Name = "tee"

// Printer hands every record to all of its printers, in order.
type Printer struct {
	printers []hconsole.Printer
}

var _ hconsole.Printer = (*Printer)(nil)
var _ hconsole.Clearer = (*Printer)(nil)

func New(printers ...hconsole.Printer) *Printer {
	return &Printer{printers: printers}
}

func (p *Printer) Add(printer hconsole.Printer) {
	p.printers = append(p.printers, printer)
}

func (p *Printer) Len() int {
	return len(p.printers)
}

// Print keeps going when a printer fails; the returned error combines all
// failures.
func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	var err error
	for _, printer := range p.printers {
		err = multierr.Append(err, printer.Print(level, rec))
	}

	return err
}

func (p *Printer) Clear() {
	for _, printer := range p.printers {
		if c, ok := printer.(hconsole.Clearer); ok {
			c.Clear()
		}
	}
}
