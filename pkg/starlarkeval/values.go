package starlarkeval

import (
	"fmt"

	"go.starlark.net/starlark"
)

// StringList converts a Starlark list or tuple of strings.
func StringList(name string, value starlark.Value) ([]string, error) {
	iterable, ok := value.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("%s: want list of strings, got %s", name, value.Type())
	}
	var out []string
	iter := iterable.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		s, ok := starlark.AsString(item)
		if !ok {
			return nil, fmt.Errorf("%s: want string element, got %s", name, item.Type())
		}
		out = append(out, s)
	}
	return out, nil
}

// StringDict converts a Starlark dict with string keys and values.
func StringDict(name string, value starlark.Value) (map[string]string, error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("%s: want dict, got %s", name, value.Type())
	}
	out := make(map[string]string, dict.Len())
	for _, item := range dict.Items() {
		k, ok := starlark.AsString(item[0])
		if !ok {
			return nil, fmt.Errorf("%s: want string key, got %s", name, item[0].Type())
		}
		v, ok := starlark.AsString(item[1])
		if !ok {
			return nil, fmt.Errorf("%s[%q]: want string value, got %s", name, k, item[1].Type())
		}
		out[k] = v
	}
	return out, nil
}
