package hlipgloss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	assert.Equal(t, forcetty, IsTerminal(&bytes.Buffer{}))
}

func TestNewRendererPlain(t *testing.T) {
	if forcetty {
		t.Skip("FORCE_TTY is set")
	}

	r := NewRenderer(&bytes.Buffer{})

	assert.Equal(t, "hello", r.NewStyle().Bold(true).Render("hello"))
}
