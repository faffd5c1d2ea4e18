package hconsole

import "strings"

// AnonymousFrame names a frame whose function has no name.
const AnonymousFrame = "<anonymous>"

// Trace is the record produced by console.trace(). Stack is ordered from the
// most recent caller to the entry point.
type Trace struct {
	Label    string
	HasLabel bool
	Stack    []string
}

func (*Trace) printable() {}

// Title is the first line of a rendered trace.
func (t *Trace) Title() string {
	if t.HasLabel {
		return t.Label
	}

	return "console.trace()"
}

func (t *Trace) String() string {
	var sb strings.Builder
	sb.WriteString(t.Title())
	for _, frame := range t.Stack {
		sb.WriteString("\n    at ")
		sb.WriteString(frame)
	}

	return sb.String()
}
