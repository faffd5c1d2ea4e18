package hconsole_test

import (
	"errors"
	"testing"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hconsole/hconsoletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestPipeline(t *testing.T) {
	tests := []struct {
		name          string
		args          []starlark.Value
		expected      []hconsoletest.Method
		expectedPrint []starlark.Value
	}{
		{
			name:     "empty",
			args:     nil,
			expected: []hconsoletest.Method{hconsoletest.MethodLogger},
		},
		{
			name:          "single without specifier",
			args:          []starlark.Value{str("hello")},
			expected:      []hconsoletest.Method{hconsoletest.MethodLogger, hconsoletest.MethodPrinter},
			expectedPrint: []starlark.Value{str("hello")},
		},
		{
			name:          "single with specifier",
			args:          []starlark.Value{str("100%")},
			expected:      []hconsoletest.Method{hconsoletest.MethodLogger, hconsoletest.MethodPrinter},
			expectedPrint: []starlark.Value{str("100%")},
		},
		{
			name:          "many without specifier",
			args:          []starlark.Value{str("a"), starlark.MakeInt(1)},
			expected:      []hconsoletest.Method{hconsoletest.MethodLogger, hconsoletest.MethodPrinter},
			expectedPrint: []starlark.Value{str("a"), starlark.MakeInt(1)},
		},
		{
			name:          "many with specifier",
			args:          []starlark.Value{str("%s!"), str("a")},
			expected:      []hconsoletest.Method{hconsoletest.MethodLogger, hconsoletest.MethodFormatter, hconsoletest.MethodPrinter},
			expectedPrint: []starlark.Value{str("%s!"), str("a")},
		},
		{
			name: "non string first with specifier",
			args: []starlark.Value{
				starlark.NewList([]starlark.Value{str("%d")}),
				starlark.MakeInt(1),
			},
			expected: []hconsoletest.Method{hconsoletest.MethodLogger, hconsoletest.MethodFormatter, hconsoletest.MethodPrinter},
			expectedPrint: []starlark.Value{
				starlark.NewList([]starlark.Value{str("%d")}),
				starlark.MakeInt(1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := hconsoletest.New()

			v, err := rec.Logger(hconsole.LogLevel, tt.args)
			require.NoError(t, err)
			assert.Equal(t, starlark.None, v)
			assert.Equal(t, tt.expected, rec.Methods())

			if tt.expectedPrint == nil {
				assert.Empty(t, rec.Records)
				return
			}

			r, ok := rec.Last()
			require.True(t, ok)
			assert.Equal(t, hconsole.LogLevel, r.Level)
			assert.Equal(t, hconsole.Values(tt.expectedPrint), r.Rec)
		})
	}
}

func TestPipelineFormatterRewrites(t *testing.T) {
	rec := hconsoletest.New()
	rec.Format = func(args []starlark.Value) ([]starlark.Value, error) {
		return []starlark.Value{str("formatted")}, nil
	}

	_, err := rec.Logger(hconsole.InfoLevel, []starlark.Value{str("%o"), starlark.None})
	require.NoError(t, err)

	r, _ := rec.Last()
	assert.Equal(t, hconsole.Values{str("formatted")}, r.Rec)
}

func TestPipelineErrors(t *testing.T) {
	printErr := errors.New("print")
	formatErr := errors.New("format")

	t.Run("printer single", func(t *testing.T) {
		rec := hconsoletest.New()
		rec.PrinterErr = printErr

		_, err := rec.Logger(hconsole.LogLevel, []starlark.Value{str("a")})
		assert.ErrorIs(t, err, printErr)
	})

	t.Run("printer many", func(t *testing.T) {
		rec := hconsoletest.New()
		rec.PrinterErr = printErr

		_, err := rec.Logger(hconsole.LogLevel, []starlark.Value{str("a"), str("b")})
		assert.ErrorIs(t, err, printErr)
	})

	t.Run("formatter", func(t *testing.T) {
		rec := hconsoletest.New()
		rec.FormatterErr = formatErr

		_, err := rec.Logger(hconsole.LogLevel, []starlark.Value{str("%s"), str("b")})
		assert.ErrorIs(t, err, formatErr)
		assert.Empty(t, rec.Records)
	})

	t.Run("conversion", func(t *testing.T) {
		convErr := errors.New("conv")
		p := hconsole.NewPipeline(
			hconsole.PrinterFunc(func(hconsole.Level, hconsole.Printable) error {
				t.Fatal("printer must not be called")
				return nil
			}),
			hconsole.WithConverter(failingConverter{err: convErr}),
		)

		_, err := p.Logger(hconsole.LogLevel, []starlark.Value{str("a"), str("b")})
		assert.ErrorIs(t, err, convErr)

		// a single argument never needs converting
		p = hconsole.NewPipeline(hconsole.PrinterFunc(func(hconsole.Level, hconsole.Printable) error {
			return nil
		}), hconsole.WithConverter(failingConverter{err: convErr}))
		_, err = p.Logger(hconsole.LogLevel, []starlark.Value{str("a")})
		assert.NoError(t, err)
	})
}

type clearPrinter struct {
	cleared int
}

func (c *clearPrinter) Print(hconsole.Level, hconsole.Printable) error { return nil }
func (c *clearPrinter) Clear()                                         { c.cleared++ }

func TestPipelineClear(t *testing.T) {
	cp := &clearPrinter{}
	hconsole.NewPipeline(cp).Clear()
	assert.Equal(t, 1, cp.cleared)

	// printers that cannot clear are left alone
	hconsole.NewPipeline(hconsole.PrinterFunc(func(hconsole.Level, hconsole.Printable) error {
		return nil
	})).Clear()
}

func TestIdentityFormatter(t *testing.T) {
	args := []starlark.Value{str("%s"), str("a")}

	out, err := hconsole.IdentityFormatter(args)
	require.NoError(t, err)
	assert.Equal(t, args, out)
}

func TestFilter(t *testing.T) {
	var printed []hconsole.Level
	p := hconsole.PrinterFunc(func(level hconsole.Level, rec hconsole.Printable) error {
		printed = append(printed, level)
		return nil
	})

	f := hconsole.Filter(p, hconsole.ErrorLevel, hconsole.AssertLevel)
	for _, lvl := range hconsole.Levels() {
		require.NoError(t, f.Print(lvl, hconsole.Values{str("x")}))
	}
	assert.Equal(t, []hconsole.Level{hconsole.ErrorLevel, hconsole.AssertLevel}, printed)

	cp := &clearPrinter{}
	hconsole.Filter(cp, hconsole.LogLevel).(hconsole.Clearer).Clear()
	assert.Equal(t, 1, cp.cleared)

	assert.Equal(t, hconsole.Printer(cp), hconsole.Filter(cp))
}

func TestMessage(t *testing.T) {
	msg, err := hconsole.Message(hconsole.Values{str("a"), starlark.MakeInt(1), starlark.None}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a 1 None", msg)

	msg, err = hconsole.Message(&hconsole.Trace{Label: "lbl", HasLabel: true, Stack: []string{"f"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lbl", msg)

	convErr := errors.New("conv")
	_, err = hconsole.Message(hconsole.Values{str("a")}, failingConverter{err: convErr})
	assert.ErrorIs(t, err, convErr)
}
