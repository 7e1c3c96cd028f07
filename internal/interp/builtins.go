package interp

import (
	"fmt"
	"math"

	"github.com/dove-lang/dove/internal/runtime"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// defineBuiltins installs the global free functions every Dove program
// starts with: type introspection, assertions, and JSON interop. Per-type
// property methods (string/array/dictionary/number) are dispatched
// separately by getProperty, since they're bound to a receiver rather than
// living in the global scope.
func (i *Interpreter) defineBuiltins() {
	i.globals.Define("type_of", &runtime.NativeFunction{
		Name: "type_of", ArityVal: 1,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.TypeName(args[0]), nil
		},
	})

	i.globals.Define("assert", &runtime.NativeFunction{
		Name: "assert", ArityVal: 1,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			if !runtime.IsTruthy(args[0]) {
				return nil, fmt.Errorf("Assertion failed.")
			}
			return nil, nil
		},
	})

	i.globals.Define("json_encode", &runtime.NativeFunction{
		Name: "json_encode", ArityVal: 1,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			raw, err := encodeJSON(args[0])
			if err != nil {
				return nil, err
			}
			return raw, nil
		},
	})

	i.globals.Define("json_decode", &runtime.NativeFunction{
		Name: "json_decode", ArityVal: 1,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			text, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("json_decode() expects a String argument, got %s.", runtime.TypeName(args[0]))
			}
			if !gjson.Valid(text) {
				return nil, fmt.Errorf("Invalid JSON text.")
			}
			return jsonResultToValue(gjson.Parse(text)), nil
		},
	})
}

// encodeJSON renders a Dove Value as JSON text. Scalars are encoded via a
// sjson-set/gjson-get round trip (so string escaping comes from sjson
// rather than a hand-rolled escaper); Arrays/Tuples append elements with
// sjson's "-1" append path, and Dictionaries set one key at a time —
// mirroring the teacher's builtins/json.go "wrap a value tree into JSON"
// concern, adapted to Dove's own Value variants instead of DWScript's
// jsonvalue package.
func encodeJSON(v runtime.Value) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case float64:
		return scalarRaw(val)
	case string:
		return scalarRaw(val)
	case *runtime.Array:
		return encodeSequence(val.Elements)
	case *runtime.Tuple:
		return encodeSequence(val.Elements)
	case *runtime.Dictionary:
		doc := "{}"
		for _, entry := range val.Entries() {
			raw, err := encodeJSON(entry.Value)
			if err != nil {
				return "", err
			}
			next, err := sjson.SetRaw(doc, entry.Key.String(), raw)
			if err != nil {
				return "", err
			}
			doc = next
		}
		return doc, nil
	default:
		return "", fmt.Errorf("Cannot JSON-encode a value of type '%s'.", runtime.TypeName(v))
	}
}

func encodeSequence(elements []runtime.Value) (string, error) {
	doc := "[]"
	for _, elem := range elements {
		raw, err := encodeJSON(elem)
		if err != nil {
			return "", err
		}
		next, err := sjson.SetRaw(doc, "-1", raw)
		if err != nil {
			return "", err
		}
		doc = next
	}
	return doc, nil
}

// scalarRaw encodes a single string or number scalar via sjson, then
// extracts its properly-escaped JSON representation back out with gjson.
func scalarRaw(v any) (string, error) {
	doc, err := sjson.Set("{}", "v", v)
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, "v").Raw, nil
}

// jsonResultToValue converts a parsed gjson.Result into Dove's own Value
// model: JSON objects become Dictionary (string keys), arrays become
// Array, and scalars map onto Number/String/Boolean/Nil directly.
func jsonResultToValue(r gjson.Result) runtime.Value {
	switch {
	case r.IsArray():
		elements := r.Array()
		out := make([]runtime.Value, len(elements))
		for idx, el := range elements {
			out[idx] = jsonResultToValue(el)
		}
		return runtime.NewArray(out)

	case r.IsObject():
		dict := runtime.NewDictionary()
		r.ForEach(func(key, value gjson.Result) bool {
			dict.Set(runtime.StringDictKey(key.String()), jsonResultToValue(value))
			return true
		})
		return dict

	default:
		switch r.Type {
		case gjson.Null:
			return nil
		case gjson.True:
			return true
		case gjson.False:
			return false
		case gjson.Number:
			return r.Num
		default:
			return r.String()
		}
	}
}

// --- per-type builtin properties (`.len()`, `.push(x)`, ...) ---

// getProperty dispatches `Get(obj, name)` across Dove's value kinds: the
// built-in aggregate/number methods named in spec.md §4.6 are returned as
// receiver-bound NativeFunctions; Instance falls back to its own field/
// method lookup (including lazy method binding).
func (i *Interpreter) getProperty(object runtime.Value, name string) (runtime.Value, bool) {
	switch v := object.(type) {
	case string:
		return stringProperty(v, name)
	case *runtime.Array:
		return arrayProperty(v, name)
	case *runtime.Dictionary:
		return dictionaryProperty(v, name)
	case float64:
		return numberProperty(v, name)
	case *runtime.Instance:
		return v.Get(name)
	default:
		return nil, false
	}
}

// setProperty dispatches `Set(obj, name, value)`. Only Instance fields are
// assignable; every other kind's properties are read-only built-in
// methods.
func (i *Interpreter) setProperty(object runtime.Value, name string, value runtime.Value) bool {
	instance, ok := object.(*runtime.Instance)
	if !ok {
		return false
	}
	instance.Set(name, value)
	return true
}

func native(name string, arity int, fn func(args []runtime.Value) (runtime.Value, error)) *runtime.NativeFunction {
	return &runtime.NativeFunction{Name: name, ArityVal: arity, Fn: fn}
}

func stringProperty(s string, name string) (runtime.Value, bool) {
	runes := []rune(s)
	switch name {
	case "len":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return float64(len(runes)), nil
		}), true
	case "chars":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			out := make([]runtime.Value, len(runes))
			for idx, r := range runes {
				out[idx] = string(r)
			}
			return runtime.NewArray(out), nil
		}), true
	default:
		return nil, false
	}
}

func arrayProperty(arr *runtime.Array, name string) (runtime.Value, bool) {
	switch name {
	case "len":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return float64(len(arr.Elements)), nil
		}), true
	case "is_empty":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return len(arr.Elements) == 0, nil
		}), true
	case "push":
		return native(name, 1, func(args []runtime.Value) (runtime.Value, error) {
			arr.Elements = append(arr.Elements, args[0])
			return nil, nil
		}), true
	case "pop":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			if len(arr.Elements) == 0 {
				return nil, fmt.Errorf("Cannot pop from an empty array.")
			}
			last := arr.Elements[len(arr.Elements)-1]
			arr.Elements = arr.Elements[:len(arr.Elements)-1]
			return last, nil
		}), true
	case "remove":
		return native(name, 1, func(args []runtime.Value) (runtime.Value, error) {
			idx, ok := indexAsInt(args[0], len(arr.Elements))
			if !ok {
				return nil, fmt.Errorf("Array index out of range.")
			}
			removed := arr.Elements[idx]
			arr.Elements = append(arr.Elements[:idx], arr.Elements[idx+1:]...)
			return removed, nil
		}), true
	default:
		return nil, false
	}
}

func dictionaryProperty(dict *runtime.Dictionary, name string) (runtime.Value, bool) {
	switch name {
	case "len":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return float64(dict.Len()), nil
		}), true
	case "keys":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return runtime.NewArray(dict.Keys()), nil
		}), true
	case "values":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return runtime.NewArray(dict.Values()), nil
		}), true
	case "remove":
		return native(name, 1, func(args []runtime.Value) (runtime.Value, error) {
			key, ok := runtime.DictKeyFromValue(args[0])
			if !ok {
				return nil, fmt.Errorf("Only String and Integer can be used as dictionary key.")
			}
			return dict.Remove(key), nil
		}), true
	default:
		return nil, false
	}
}

func numberProperty(n float64, name string) (runtime.Value, bool) {
	switch name {
	case "fract":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return n - math.Trunc(n), nil
		}), true
	case "abs":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return math.Abs(n), nil
		}), true
	case "floor":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return math.Floor(n), nil
		}), true
	case "ceil":
		return native(name, 0, func(args []runtime.Value) (runtime.Value, error) {
			return math.Ceil(n), nil
		}), true
	default:
		return nil, false
	}
}
