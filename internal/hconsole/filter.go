package hconsole

type filter struct {
	Printer
	levels map[Level]struct{}
}

// Filter drops records whose level is not listed. No levels means no
// filtering.
func Filter(p Printer, levels ...Level) Printer {
	if len(levels) == 0 {
		return p
	}

	f := filter{
		Printer: p,
		levels:  make(map[Level]struct{}, len(levels)),
	}
	for _, level := range levels {
		f.levels[level] = struct{}{}
	}

	return f
}

func (f filter) Print(level Level, rec Printable) error {
	if _, ok := f.levels[level]; !ok {
		return nil
	}

	return f.Printer.Print(level, rec)
}

func (f filter) Clear() {
	if c, ok := f.Printer.(Clearer); ok {
		c.Clear()
	}
}

var _ Clearer = filter{}
