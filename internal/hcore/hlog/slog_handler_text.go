package hlog

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/hephbuild/starconsole/internal/hlipgloss"
)

var levelColors = map[slog.Level]lipgloss.TerminalColor{
	slog.LevelDebug: lipgloss.Color("#29C6E8"),
	slog.LevelInfo:  lipgloss.Color("#2C75FE"),
	slog.LevelWarn:  lipgloss.Color("#E7C229"),
	slog.LevelError: lipgloss.Color("#FF2A25"),
}

type textHandler struct {
	attrs   []slog.Attr
	group   string
	leveler slog.Leveler

	mu *sync.Mutex
	w  io.Writer

	renderer Renderer
}

func (t textHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= t.leveler.Level()
}

func renderAttr(sb *strings.Builder, r Renderer, group string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	key := attr.Key
	if group != "" {
		key = group + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, a := range attr.Value.Group() {
			renderAttr(sb, r, key, a)
		}

		return
	}

	sb.WriteString(" ")
	sb.WriteString(r.keyStyle.Render(key + "="))
	sb.WriteString(attr.Value.String())
}

func FormatRecord(r Renderer, record slog.Record, attrs ...slog.Attr) string {
	var sb strings.Builder
	style, ok := r.lvlStyles[record.Level]
	if !ok {
		style = r.keyStyle
	}
	sb.WriteString(style.Render(record.Level.String()))
	sb.WriteString(" ")
	sb.WriteString(record.Message)

	for _, attr := range attrs {
		renderAttr(&sb, r, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		renderAttr(&sb, r, "", attr)

		return true
	})

	return sb.String()
}

func (t textHandler) Handle(ctx context.Context, record slog.Record) error {
	if t.group != "" {
		var attrs []slog.Attr
		record.Attrs(func(attr slog.Attr) bool {
			attrs = append(attrs, attr)

			return true
		})
		record = slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		record.AddAttrs(slog.Attr{Key: t.group, Value: slog.GroupValue(attrs...)})
	}

	line := FormatRecord(t.renderer, record, t.attrs...) + "\n"

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := io.WriteString(t.w, line)

	return err
}

func (t textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if t.group != "" {
		attrs = []slog.Attr{{Key: t.group, Value: slog.GroupValue(attrs...)}}
	}

	t.attrs = append(slices.Clone(t.attrs), attrs...)

	return t
}

func (t textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}

	if t.group != "" {
		name = t.group + "." + name
	}
	t.group = name

	return t
}

type Renderer struct {
	lvlStyles map[slog.Level]lipgloss.Style
	keyStyle  lipgloss.Style
}

func NewRenderer(w io.Writer) Renderer {
	r := hlipgloss.NewRenderer(w)

	lvlStyles := map[slog.Level]lipgloss.Style{}
	for lvl, color := range levelColors {
		lvlStyles[lvl] = r.NewStyle().Bold(true).Foreground(color)
	}

	return Renderer{
		lvlStyles: lvlStyles,
		keyStyle:  r.NewStyle().Faint(true),
	}
}

func NewTextLogger(w io.Writer, leveler slog.Leveler) Logger {
	return NewLogger(textHandler{
		w:        w,
		mu:       &sync.Mutex{},
		leveler:  leveler,
		renderer: NewRenderer(w),
	})
}
