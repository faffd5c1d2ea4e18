package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hcore/hlog"
	"github.com/hephbuild/starconsole/internal/hpanic"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

var ErrLoadCycle = errors.New("load cycle")

// ExecError is a script failure along with its Starlark backtrace.
type ExecError struct {
	Msg       string
	Backtrace string
	Err       error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%v:\n%v", e.Msg, e.Backtrace)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

type loadEntry struct {
	globals starlark.StringDict
	err     error
	done    bool
}

// Runner executes scripts against a single console. Files pulled in with
// load() share that console and are executed once per Runner.
type Runner struct {
	console *hconsole.Console
	loaded  map[string]*loadEntry
}

func New(console *hconsole.Console) *Runner {
	return &Runner{
		console: console,
		loaded:  map[string]*loadEntry{},
	}
}

func (r *Runner) universe() starlark.StringDict {
	universe := r.console.Predeclared()
	universe["struct"] = starlark.NewBuiltin("struct", starlarkstruct.Make)

	return universe
}

func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		While:             true,
		TopLevelControl:   true,
		GlobalReassign:    true,
		LoadBindsGlobally: false,
		Recursion:         true,
	}
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) (starlark.StringDict, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return r.load(ctx, path)
}

// Run executes src, which may be anything starlark.ExecFileOptions accepts,
// under filename.
func (r *Runner) Run(ctx context.Context, filename string, src any) (starlark.StringDict, error) {
	return r.exec(ctx, filename, src)
}

func (r *Runner) load(ctx context.Context, path string) (starlark.StringDict, error) {
	if e, ok := r.loaded[path]; ok {
		if !e.done {
			return nil, fmt.Errorf("%v: %w", path, ErrLoadCycle)
		}

		return e.globals, e.err
	}

	e := &loadEntry{}
	r.loaded[path] = e

	b, err := os.ReadFile(path)
	if err == nil {
		e.globals, err = r.exec(ctx, path, b)
	}
	e.err = err
	e.done = true

	return e.globals, e.err
}

func (r *Runner) exec(ctx context.Context, filename string, src any) (starlark.StringDict, error) {
	var printErr error

	thread := &starlark.Thread{
		Name: filename,
		Print: r.console.PrintHook(func(err error) {
			if printErr == nil {
				printErr = err
			}
		}),
		Load: func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
			if !strings.HasPrefix(module, "./") && !strings.HasPrefix(module, "../") {
				return nil, fmt.Errorf("unsupported module %q", module)
			}

			path := filepath.Join(filepath.Dir(filename), module)

			res, err := r.load(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", module, err)
			}

			return res, nil
		},
	}

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	hlog.From(ctx).Debug("exec", "file", filename)

	res, err := hpanic.RecoverV(func() (starlark.StringDict, error) {
		return starlark.ExecFileOptions(fileOptions(), thread, filename, src, r.universe())
	})
	if err != nil {
		var perr *hpanic.Error
		if errors.As(err, &perr) {
			hlog.From(ctx).Debug("exec panicked", "file", filename, "stack", string(perr.Stack))

			return nil, err
		}

		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			return nil, &ExecError{Msg: eerr.Msg, Backtrace: eerr.Backtrace(), Err: eerr}
		}
		return nil, err
	}
	if printErr != nil {
		return nil, fmt.Errorf("print: %w", printErr)
	}
	res.Freeze()

	return res, nil
}
