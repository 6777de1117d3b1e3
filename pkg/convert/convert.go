// Package convert translates between native Go values and the object model.
// It is the builder layer interop code uses to turn foreign literals into
// object graphs and back.
package convert

import (
	"fmt"
	"math"
	"sort"

	"github.com/irkit-labs/irkit/pkg/object"
)

// FromGo builds an object graph from a native Go value.
//
// Mappings: nil -> nil object, bool -> Bool, integer kinds -> Int,
// float kinds -> Float, string -> String, []any -> Array, []int64 -> Shape,
// map[string]any -> Map with entries sorted by key (Go map iteration is
// randomized; sorting keeps construction deterministic), []Entry -> Map in
// entry order. Existing Object values pass through unchanged.
func FromGo(v any) (object.Object, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case object.Object:
		return val, nil
	case bool:
		return object.Bool(val), nil
	case string:
		return object.String(val), nil
	case int:
		return object.Int(val), nil
	case int8:
		return object.Int(val), nil
	case int16:
		return object.Int(val), nil
	case int32:
		return object.Int(val), nil
	case int64:
		return object.Int(val), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return nil, fmt.Errorf("uint %d overflows int64", val)
		}
		return object.Int(val), nil
	case uint8:
		return object.Int(val), nil
	case uint16:
		return object.Int(val), nil
	case uint32:
		return object.Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("uint64 %d overflows int64", val)
		}
		return object.Int(val), nil
	case float32:
		return object.Float(val), nil
	case float64:
		return object.Float(val), nil
	case []int64:
		return object.NewShape(val...), nil
	case []any:
		elems := make([]object.Object, len(val))
		for i, item := range val {
			o, err := FromGo(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			elems[i] = o
		}
		return object.NewArray(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]object.Entry, 0, len(val))
		for _, k := range keys {
			o, err := FromGo(val[k])
			if err != nil {
				return nil, fmt.Errorf("map key %q: %w", k, err)
			}
			entries = append(entries, object.Entry{Key: object.String(k), Value: o})
		}
		return object.NewMap(entries...), nil
	case []object.Entry:
		// The order-preserving map input: callers that care about entry
		// order build []Entry instead of map[string]any.
		return object.NewMap(val...), nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// ToGo converts an object graph back to native Go values.
//
// Returns: nil, bool, int64, float64, string, []any (Array), []int64
// (Shape), or map[string]any (Map). A Map with a non-string key cannot be
// represented and fails.
func ToGo(o object.Object) (any, error) {
	switch val := o.(type) {
	case nil:
		return nil, nil
	case object.Bool:
		return bool(val), nil
	case object.Int:
		return int64(val), nil
	case object.Float:
		return float64(val), nil
	case object.String:
		return string(val), nil
	case *object.Shape:
		return val.Dims(), nil
	case *object.Array:
		elems := val.Elements()
		result := make([]any, len(elems))
		for i, el := range elems {
			gv, err := ToGo(el)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil
	case *object.Map:
		result := make(map[string]any, val.Size())
		for _, e := range val.Entries() {
			key, ok := e.Key.(object.String)
			if !ok {
				return nil, fmt.Errorf("map key must be a string, got %s", typeName(e.Key))
			}
			gv, err := ToGo(e.Value)
			if err != nil {
				return nil, fmt.Errorf("map key %q: %w", string(key), err)
			}
			result[string(key)] = gv
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported object type: %s", typeName(o))
	}
}

func typeName(o object.Object) string {
	name, err := object.NameOf(object.TagOf(o))
	if err != nil {
		return fmt.Sprintf("tag(%d)", object.TagOf(o))
	}
	return name
}
