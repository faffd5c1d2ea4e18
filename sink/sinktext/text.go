package sinktext

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hlipgloss"
	"github.com/muesli/termenv"
)

const Name = "text"

// clearSequence moves the cursor home and erases the screen.
const clearSequence = "\x1b[H\x1b[2J"

var levelColors = map[hconsole.Level]lipgloss.TerminalColor{
	hconsole.DebugLevel:      lipgloss.Color("#29C6E8"),
	hconsole.InfoLevel:       lipgloss.Color("#2C75FE"),
	hconsole.LogLevel:        lipgloss.Color("#A8A8A8"),
	hconsole.WarnLevel:       lipgloss.Color("#E7C229"),
	hconsole.ErrorLevel:      lipgloss.Color("#FF2A25"),
	hconsole.AssertLevel:     lipgloss.Color("#FF2A25"),
	hconsole.TraceLevel:      lipgloss.Color("#3FCD23"),
	hconsole.CountLevel:      lipgloss.Color("#FF8825"),
	hconsole.CountResetLevel: lipgloss.Color("#FF8825"),
}

type Options struct {
	// Converter renders values, defaults to hconsole.DefaultConverter.
	Converter hconsole.Converter
	// Plain disables colors.
	Plain bool
}

// Printer renders records as human readable lines.
type Printer struct {
	w    io.Writer
	conv hconsole.Converter
	tty  bool

	lvlStyles  map[hconsole.Level]lipgloss.Style
	frameStyle lipgloss.Style
	mu         sync.Mutex
}

var _ hconsole.Printer = (*Printer)(nil)
var _ hconsole.Clearer = (*Printer)(nil)

func New(w io.Writer, opts Options) *Printer {
	r := hlipgloss.NewRenderer(w)
	if opts.Plain {
		r.SetColorProfile(termenv.Ascii)
	}

	lvlStyles := map[hconsole.Level]lipgloss.Style{}
	for lvl, color := range levelColors {
		lvlStyles[lvl] = r.NewStyle().Bold(true).Foreground(color)
	}

	conv := opts.Converter
	if conv == nil {
		conv = hconsole.DefaultConverter
	}

	return &Printer{
		w:          w,
		conv:       conv,
		tty:        hlipgloss.IsTerminal(w),
		lvlStyles:  lvlStyles,
		frameStyle: r.NewStyle().Faint(true),
	}
}

func (p *Printer) badge(level hconsole.Level) string {
	return p.lvlStyles[level].Render("(" + level.String() + ")")
}

// Format renders a record without the trailing newline.
func (p *Printer) Format(level hconsole.Level, rec hconsole.Printable) (string, error) {
	msg, err := hconsole.Message(rec, p.conv)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(p.badge(level))
	sb.WriteString(" ")
	sb.WriteString(msg)

	if trace, ok := rec.(*hconsole.Trace); ok {
		for _, frame := range trace.Stack {
			sb.WriteString("\n")
			sb.WriteString(p.frameStyle.Render("    at " + frame))
		}
	}

	return sb.String(), nil
}

func (p *Printer) Print(level hconsole.Level, rec hconsole.Printable) error {
	s, err := p.Format(level, rec)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err = io.WriteString(p.w, s+"\n")

	return err
}

// Clear wipes the terminal, it does nothing when the output is not a TTY.
func (p *Printer) Clear() {
	if !p.tty {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = io.WriteString(p.w, clearSequence)
}
