// Package runtime holds Dove's value representation and the supporting
// environment, callable, and class machinery the interpreter operates on.
package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// Value is any Dove runtime value: float64 (Number), bool (Boolean), nil
// (Nil), string (String), *Array, *Tuple, *Dictionary, Callable, *Class, or
// *Instance.
type Value any

// Array is a shared, mutable list (`[1, 2, 3]`). Assigning or passing an
// Array copies the pointer, not the backing slice, so mutations through one
// reference are visible through all aliases.
type Array struct {
	Elements []Value
}

// NewArray wraps a slice of values as a shared Array.
func NewArray(elements []Value) *Array {
	return &Array{Elements: elements}
}

// Tuple is an immutable, fixed-size list (`(1, 2, 3)`, or the result of a
// range expression). Unlike Array, Tuple values are never mutated in place.
type Tuple struct {
	Elements []Value
}

// NewTuple wraps a slice of values as a Tuple.
func NewTuple(elements []Value) *Tuple {
	return &Tuple{Elements: elements}
}

// DictKey is a Dictionary key: either a string or an integral number,
// matching the only two key shapes Dove's dictionary literals accept.
type DictKey struct {
	isString bool
	str      string
	num      int64
}

// StringDictKey builds a string-keyed DictKey.
func StringDictKey(s string) DictKey {
	return DictKey{isString: true, str: s}
}

// NumberDictKey builds an integer-keyed DictKey.
func NumberDictKey(n int64) DictKey {
	return DictKey{isString: false, num: n}
}

// DictKeyFromValue converts a Value into a DictKey, reporting ok=false if
// the value is not a valid dictionary key (a string, or a number with no
// fractional part).
func DictKeyFromValue(v Value) (DictKey, bool) {
	switch val := v.(type) {
	case string:
		return StringDictKey(val), true
	case float64:
		if val == float64(int64(val)) {
			return NumberDictKey(int64(val)), true
		}
		return DictKey{}, false
	default:
		return DictKey{}, false
	}
}

// Value converts the key back into the Value it was built from.
func (k DictKey) Value() Value {
	if k.isString {
		return k.str
	}
	return float64(k.num)
}

// String renders the key the way dictionary stringification displays it.
func (k DictKey) String() string {
	if k.isString {
		return `"` + k.str + `"`
	}
	return strconv.FormatInt(k.num, 10)
}

// Dictionary is a shared, mutable string|int-keyed map (`{"x": 1}`).
type Dictionary struct {
	entries map[DictKey]Value
}

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[DictKey]Value)}
}

// Get looks up a key, reporting ok=false if absent.
func (d *Dictionary) Get(key DictKey) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Set inserts or overwrites a key, returning the previous value (or nil).
func (d *Dictionary) Set(key DictKey, value Value) Value {
	old := d.entries[key]
	d.entries[key] = value
	return old
}

// Remove deletes a key, returning its value (or nil if absent).
func (d *Dictionary) Remove(key DictKey) Value {
	old, ok := d.entries[key]
	if ok {
		delete(d.entries, key)
	}
	return old
}

// Len reports the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// orderedKeys returns the dictionary's keys in a deterministic natural-sort
// order, so iteration, stringification, and `.keys()`/`.values()` never
// depend on Go's randomized map iteration order.
func (d *Dictionary) orderedKeys() []DictKey {
	keys := make([]DictKey, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(keys[i].String(), keys[j].String())
	})
	return keys
}

// Keys returns the dictionary's keys as Values, in deterministic order.
func (d *Dictionary) Keys() []Value {
	ordered := d.orderedKeys()
	out := make([]Value, len(ordered))
	for i, k := range ordered {
		out[i] = k.Value()
	}
	return out
}

// Values returns the dictionary's values, ordered to match Keys.
func (d *Dictionary) Values() []Value {
	ordered := d.orderedKeys()
	out := make([]Value, len(ordered))
	for i, k := range ordered {
		out[i] = d.entries[k]
	}
	return out
}

// Entries returns (key, value) pairs in deterministic order, for iteration
// and stringification.
func (d *Dictionary) Entries() []DictEntry {
	ordered := d.orderedKeys()
	out := make([]DictEntry, len(ordered))
	for i, k := range ordered {
		out[i] = DictEntry{Key: k, Value: d.entries[k]}
	}
	return out
}

// DictEntry is a single key/value pair, as returned by Dictionary.Entries.
type DictEntry struct {
	Key   DictKey
	Value Value
}

// IsTruthy implements Dove's truthiness rule: nil and false are falsy,
// everything else (including 0, "", and empty collections) is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

// IsEqual implements Dove's `==`: deep structural equality for collections,
// by-value equality for scalars, and reference identity for functions,
// classes, and instances.
func IsEqual(a, b Value) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !IsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !IsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dictionary:
		bv, ok := b.(*Dictionary)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for key, val := range av.entries {
			otherVal, ok := bv.entries[key]
			if !ok || !IsEqual(val, otherVal) {
				return false
			}
		}
		return true
	default:
		// Functions, classes, and instances compare by reference identity:
		// the original grammar leaves this case undefined, so Dove defines
		// it rather than panic on `fn == fn`.
		return a == b
	}
}

// Stringify renders a Value the way `print` and nested-collection display
// do: strings are always shown quoted, even at the top level.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return `"` + val + `"`
	case *Array:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = Stringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Tuple:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = Stringify(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *Dictionary:
		entries := val.Entries()
		parts := make([]string, len(entries))
		for i, en := range entries {
			parts[i] = en.Key.String() + ": " + Stringify(en.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Callable:
		return fmt.Sprintf("<fun/%d>", val.Arity())
	case *Class:
		return "<class " + val.Name + ">"
	case *Instance:
		return "<instance " + val.Class.Name + ">"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// TypeName names a Value's runtime type, as surfaced by the `type_of`
// builtin and in "cannot X on type Y" error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Array:
		return "array"
	case *Tuple:
		return "tuple"
	case *Dictionary:
		return "dictionary"
	case Callable:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	default:
		return "unknown"
	}
}
