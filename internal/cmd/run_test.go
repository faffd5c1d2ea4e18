package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hephbuild/starconsole/internal/config"
	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hcore/hlog/hlogtest"
	"github.com/hephbuild/starconsole/sink"
	"github.com/hephbuild/starconsole/sink/sinkcbor"
	"github.com/hephbuild/starconsole/sink/sinkjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
def greet(name):
    console.info("hello", name)

greet("world")
console.count("x")
console.count("x")
console.assert(False, "bad", 1)
console.trace("here")
`

func writeScript(t *testing.T, dir string) string {
	t.Helper()

	p := filepath.Join(dir, "main.star")
	require.NoError(t, os.WriteFile(p, []byte(testScript), 0644))

	return p
}

func testContext(t *testing.T) context.Context {
	return hlogtest.NewContext(t)
}

func TestRunScriptText(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir)

	var stdout, summary bytes.Buffer

	cfg := config.Default()
	cfg.Summary = true

	err := runScript(testContext(t), path, runOptions{
		root:    dir,
		config:  cfg,
		runID:   "run-1",
		stdout:  &stdout,
		stderr:  &bytes.Buffer{},
		summary: &summary,
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "(info) hello world\n")
	assert.Contains(t, out, "(count) x: 2\n")
	assert.Contains(t, out, "(assert) Assertion failed: bad 1\n")
	assert.Contains(t, out, "(trace) here\n    at <toplevel>\n")

	assert.Equal(t, "x: 2\n", summary.String())
}

func TestRunScriptFileSinks(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir)

	cfg := config.Default()
	cfg.Sinks = append(cfg.Sinks,
		config.Sink{
			Name:    "records",
			Driver:  sinkcbor.Name,
			Enabled: true,
			Options: map[string]any{"path": "out" + sinkcbor.Ext},
		},
		config.Sink{
			Name:    "errors",
			Driver:  sinkjson.Name,
			Enabled: true,
			Levels:  []hconsole.Level{hconsole.AssertLevel},
			Options: map[string]any{"output": "errors.json"},
		},
	)

	var stdout bytes.Buffer
	err := runScript(testContext(t), path, runOptions{
		root:    dir,
		config:  cfg,
		sinks:   []string{"records", "errors"},
		runID:   "run-1",
		stdout:  &stdout,
		stderr:  &bytes.Buffer{},
		summary: &bytes.Buffer{},
	})
	require.NoError(t, err)

	assert.Empty(t, stdout.String())

	f, err := os.Open(filepath.Join(dir, "out"+sinkcbor.Ext))
	require.NoError(t, err)
	defer f.Close()

	var levels []string
	err = sinkcbor.Read(f, func(rec sink.Record) error {
		assert.Equal(t, "run-1", rec.RunID)
		levels = append(levels, rec.Level.String())

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "count", "count", "assert", "trace"}, levels)

	b, err := os.ReadFile(filepath.Join(dir, "errors.json"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"message":"Assertion failed: bad 1"`)
}

func TestRunScriptErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir)

	tests := []struct {
		name  string
		cfg   config.Config
		sinks []string
		err   string
	}{
		{"unknown sink", config.Default(), []string{"nope"}, `sink "nope": not configured`},
		{"unknown driver", config.Config{Sinks: []config.Sink{{Name: "a", Driver: "b", Enabled: true}}}, nil, `sink "a": unknown driver "b"`},
		{"bad options", config.Config{Sinks: []config.Sink{{Name: "a", Driver: "json", Enabled: true, Options: map[string]any{"output": []int{1}}}}}, nil, `sink "a"`},
		{"wapc outside guest", config.Config{Sinks: []config.Sink{{Name: "host", Driver: "wapc", Enabled: true}}}, nil, `sink "host": wapc: unsupported outside a waPC guest`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := runScript(testContext(t), path, runOptions{
				root:    dir,
				config:  test.cfg,
				sinks:   test.sinks,
				stdout:  &bytes.Buffer{},
				stderr:  &bytes.Buffer{},
				summary: &bytes.Buffer{},
			})
			assert.ErrorContains(t, err, test.err)
		})
	}
}

func TestRunScriptFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.star")
	require.NoError(t, os.WriteFile(path, []byte("console.log(undefined_name)\n"), 0644))

	err := runScript(testContext(t), path, runOptions{
		root:    dir,
		config:  config.Default(),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		summary: &bytes.Buffer{},
	})
	assert.ErrorContains(t, err, "undefined: undefined_name")
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir)
	records := filepath.Join(dir, "out"+sinkcbor.Ext)

	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
sinks:
  - name: text
    enabled: false
  - name: records
    driver: cbor
    options:
      path: `+records+`
`), 0644))

	execute := func(args ...string) string {
		t.Helper()

		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(&out)

		err := cmd.ExecuteContext(testContext(t))
		require.NoError(t, err)

		return out.String()
	}

	execute("--plain", "--config", cfgPath, "run", path)

	text := execute("--plain", "dump", records)
	assert.Contains(t, text, "(info) hello world\n")
	assert.Contains(t, text, "(trace) here\n    at <toplevel>\n")

	json := execute("dump", "--format", "json", records)
	assert.Len(t, strings.Split(strings.TrimSpace(json), "\n"), 5)
	assert.Contains(t, json, `"level":"count"`)

	assert.Equal(t, "dev\n", execute("version"))
}
