package hconsole

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ModuleName is the name the console module is predeclared under.
const ModuleName = "console"

type BuiltinFunc = func(
	thread *starlark.Thread,
	fn *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error)

type method = func(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error)

func builtin(m method) BuiltinFunc {
	return func(
		thread *starlark.Thread,
		fn *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword argument %v", fn.Name(), kwargs[0][0])
		}

		return m(thread, args)
	}
}

// Module returns the console module bound to c.
func (c *Console) Module() *starlarkstruct.Module {
	members := starlark.StringDict{}
	add := func(name string, m method) {
		members[name] = starlark.NewBuiltin(name, builtin(m))
	}

	add("debug", c.Debug)
	add("error", c.Error)
	add("info", c.Info)
	add("log", c.Log)
	add("warn", c.Warn)
	add("clear", c.Clear)
	add("trace", c.Trace)
	add("count", c.Count)
	add("countReset", c.CountReset)
	add("count_reset", c.CountReset)
	add("assert", c.Assert)

	return &starlarkstruct.Module{
		Name:    ModuleName,
		Members: members,
	}
}

// Predeclared returns the globals to expose the console to a program.
func (c *Console) Predeclared() starlark.StringDict {
	return starlark.StringDict{
		ModuleName: c.Module(),
	}
}

// PrintHook returns a starlark.Thread Print function routing print() to
// console.log. Thread.Print cannot fail, errors are handed to onError.
func (c *Console) PrintHook(onError func(error)) func(thread *starlark.Thread, msg string) {
	return func(thread *starlark.Thread, msg string) {
		_, err := c.Log(thread, starlark.Tuple{starlark.String(msg)})
		if err != nil && onError != nil {
			onError(err)
		}
	}
}
