// Package starval decodes Starlark values and programs into the object model.
// It backs expression evaluation in the REPL and .star file rendering.
package starval

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.starlark.net/starlark"

	"github.com/irkit-labs/irkit/pkg/object"
)

// Decode converts a Starlark value to an object graph.
//
// Mappings: None -> nil, bool -> Bool, int -> Int (must fit int64),
// float -> Float, string -> String, list and tuple -> Array, dict -> Map in
// insertion order. Anything else fails with the Starlark type name.
func Decode(v starlark.Value) (object.Object, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return object.Bool(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s overflows int64", val.String())
		}
		return object.Int(i64), nil

	case starlark.Float:
		return object.Float(val), nil

	case starlark.String:
		return object.String(val), nil

	case *starlark.List:
		elems := make([]object.Object, val.Len())
		for i := 0; i < val.Len(); i++ {
			o, err := Decode(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			elems[i] = o
		}
		return object.NewArray(elems...), nil

	case starlark.Tuple:
		elems := make([]object.Object, val.Len())
		for i := 0; i < val.Len(); i++ {
			o, err := Decode(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			elems[i] = o
		}
		return object.NewArray(elems...), nil

	case *starlark.Dict:
		entries := make([]object.Entry, 0, val.Len())
		for _, item := range val.Items() {
			key, err := Decode(item[0])
			if err != nil {
				return nil, fmt.Errorf("dict key %s: %w", item[0].String(), err)
			}
			value, err := Decode(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %s: %w", item[0].String(), err)
			}
			entries = append(entries, object.Entry{Key: key, Value: value})
		}
		return object.NewMap(entries...), nil

	default:
		return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
	}
}

// Eval evaluates a single Starlark expression and decodes the result.
// The expression runs on a fresh thread with no predeclared names; prints
// are discarded.
func Eval(src string) (object.Object, error) {
	thread := &starlark.Thread{
		Name: "eval",
		Print: func(_ *starlark.Thread, _ string) {
			// Ignore prints during expression evaluation
		},
	}

	v, err := starlark.Eval(thread, "<expr>", src, nil) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return nil, fmt.Errorf("starlark eval: %w", err)
	}

	return Decode(v)
}

// Named is one exported render root from a Starlark file.
type Named struct {
	// Name is the Starlark global the value was bound to.
	Name string

	// Obj is the decoded object graph.
	Obj object.Object
}

// DecodeFile executes a Starlark program and decodes its exported globals,
// sorted by name. Names starting with _ are private and skipped, as are
// function definitions (helpers for building values, not values themselves).
func DecodeFile(path string) ([]Named, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is an explicit user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	thread := &starlark.Thread{
		Name: fmt.Sprintf("load:%s", filepath.Base(path)),
		Print: func(_ *starlark.Thread, _ string) {
			// Ignore prints during file loading
		},
	}

	globals, err := starlark.ExecFile(thread, path, content, nil) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return nil, fmt.Errorf("starlark execution error: %w", err)
	}

	names := make([]string, 0, len(globals))
	for name, value := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		if _, isFunc := value.(starlark.Callable); isFunc {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	roots := make([]Named, 0, len(names))
	for _, name := range names {
		o, err := Decode(globals[name])
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", name, err)
		}
		roots = append(roots, Named{Name: name, Obj: o})
	}

	return roots, nil
}
