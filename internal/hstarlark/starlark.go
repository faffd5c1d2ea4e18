package hstarlark

import (
	"fmt"
	"reflect"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ToString follows str(): strings are returned without quotes, every other
// value uses its Starlark representation.
func ToString(v starlark.Value) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", fmt.Errorf("ToString: nil value")
	case starlark.String:
		return string(v), nil
	default:
		return v.String(), nil
	}
}

// FromStarlark converts v to plain Go data suitable for encoding. Lists,
// tuples, sets, dicts and structs are converted element by element; any other
// value, and a container already being converted further up, is rendered with
// its String method.
func FromStarlark(v starlark.Value) any {
	return fromStarlark(v, map[starlark.Value]struct{}{})
}

func fromStarlark(v starlark.Value, seen map[starlark.Value]struct{}) any {
	switch v := v.(type) {
	case nil, starlark.NoneType:
		return nil
	case starlark.String:
		return string(v)
	case starlark.Bool:
		return bool(v)
	case starlark.Int:
		if vi, ok := v.Int64(); ok {
			return vi
		}
		return v.String()
	case starlark.Float:
		return float64(v)
	case starlark.Tuple:
		data := make([]any, 0, len(v))
		for _, e := range v {
			data = append(data, fromStarlark(e, seen))
		}
		return data
	}

	switch v.(type) {
	case *starlark.List, *starlark.Set, *starlark.Dict, *starlarkstruct.Struct:
	default:
		return v.String()
	}

	if _, ok := seen[v]; ok {
		return v.String()
	}
	seen[v] = struct{}{}
	defer delete(seen, v)

	switch v := v.(type) {
	case *starlarkstruct.Struct:
		data := make(map[string]any, len(v.AttrNames()))
		for _, name := range v.AttrNames() {
			av, err := v.Attr(name)
			if err != nil {
				continue
			}
			data[name] = fromStarlark(av, seen)
		}
		return data
	case *starlark.Dict:
		data := make(map[string]any, v.Len())
		for _, e := range v.Items() {
			k, _ := ToString(e.Index(0))
			data[k] = fromStarlark(e.Index(1), seen)
		}
		return data
	case *starlark.List:
		data := make([]any, 0, v.Len())
		for i := range v.Len() {
			data = append(data, fromStarlark(v.Index(i), seen))
		}
		return data
	case *starlark.Set:
		data := make([]any, 0, v.Len())

		it := v.Iterate()
		defer it.Done()

		var e starlark.Value
		for it.Next(&e) {
			data = append(data, fromStarlark(e, seen))
		}
		return data
	}

	return v.String()
}

func FromGo(v any) starlark.Value {
	if v == nil {
		return starlark.None
	}

	switch v := v.(type) {
	case starlark.Value:
		return v
	case string:
		return starlark.String(v)
	case bool:
		return starlark.Bool(v)
	case int:
		return starlark.MakeInt(v)
	case int8:
		return starlark.MakeInt(int(v))
	case int16:
		return starlark.MakeInt(int(v))
	case int32:
		return starlark.MakeInt(int(v))
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)
	case float32:
		return starlark.Float(v)
	case float64:
		return starlark.Float(v)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() { //nolint:exhaustive
		case reflect.Map:
			dict := &starlark.Dict{}

			it := rv.MapRange()
			for it.Next() {
				mk := it.Key().Interface()
				mv := it.Value().Interface()

				err := dict.SetKey(FromGo(mk), FromGo(mv))
				if err != nil {
					return starlark.String(fmt.Sprint(v))
				}
			}

			return dict
		case reflect.Slice, reflect.Array:
			list := &starlark.List{}
			for i := range rv.Len() {
				_ = list.Append(FromGo(rv.Index(i).Interface()))
			}

			return list
		}

		return starlark.String(fmt.Sprint(v))
	}
}
