package hconsole

import (
	"github.com/hephbuild/starconsole/internal/hstarlark"
	"go.starlark.net/starlark"
)

// Converter is the host's value coercion. ToString may fail, failures are
// propagated to the caller of the console method untouched.
type Converter interface {
	ToString(v starlark.Value) (string, error)
	ToBool(v starlark.Value) bool
}

type starlarkConverter struct{}

func (starlarkConverter) ToString(v starlark.Value) (string, error) {
	return hstarlark.ToString(v)
}

func (starlarkConverter) ToBool(v starlark.Value) bool {
	if v == nil {
		return false
	}

	return bool(v.Truth())
}

// DefaultConverter follows Starlark's str() and truthiness rules.
var DefaultConverter Converter = starlarkConverter{}
