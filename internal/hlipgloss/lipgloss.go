package hlipgloss

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var forcetty bool

func init() {
	forcetty, _ = strconv.ParseBool(os.Getenv("FORCE_TTY"))
}

func EnvForceTTY() termenv.OutputOption {
	if forcetty {
		return termenv.WithTTY(true)
	}

	return func(output *termenv.Output) {}
}

func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, EnvForceTTY())
}

// IsTerminal reports whether w is a terminal, FORCE_TTY counts as one.
func IsTerminal(w io.Writer) bool {
	if forcetty {
		return true
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
