package mnemoreg

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotCallable indicates Item.Call was used on a non-function value.
var ErrNotCallable = errors.New("value is not callable")

// Item is a read-mostly view of one entry, produced by Snapshot.
// It captures the value and description at snapshot time and never
// mutates the registry. The value itself is shared with the registry,
// not deep-copied.
//
// Instead of a catch-all dynamic proxy, Item forwards a fixed set of
// operations (length, containment, indexing, iteration, invocation,
// truthiness, equality) to the inner value via reflection.
type Item[V any] struct {
	value       V
	description string
}

// NewItem creates an item view over a value and its description.
func NewItem[V any](value V, description string) Item[V] {
	return Item[V]{value: value, description: description}
}

// Value returns the stored value. It may be nil.
func (it Item[V]) Value() V {
	return it.value
}

// Description returns the stored description, or "" if none was attached.
func (it Item[V]) Description() string {
	return it.description
}

// Equal reports whether two items hold equal values.
// Descriptions are not compared.
func (it Item[V]) Equal(other Item[V]) bool {
	return reflect.DeepEqual(it.value, other.value)
}

// Len returns the length of the inner value for strings, slices, arrays,
// maps and channels, and 0 for anything else.
func (it Item[V]) Len() int {
	rv := indirect(reflect.ValueOf(it.value))
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len()
	default:
		return 0
	}
}

// Contains reports whether the inner value contains elem: a key for maps,
// an element for slices and arrays, a substring (or rune) for strings.
func (it Item[V]) Contains(elem any) bool {
	rv := indirect(reflect.ValueOf(it.value))
	switch rv.Kind() {
	case reflect.Map:
		ev := reflect.ValueOf(elem)
		if !ev.IsValid() || !ev.Type().AssignableTo(rv.Type().Key()) {
			return false
		}
		return rv.MapIndex(ev).IsValid()
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if reflect.DeepEqual(rv.Index(i).Interface(), elem) {
				return true
			}
		}
		return false
	case reflect.String:
		switch e := elem.(type) {
		case string:
			return strings.Contains(rv.String(), e)
		case rune:
			return strings.ContainsRune(rv.String(), e)
		}
		return false
	default:
		return false
	}
}

// Index returns the element of the inner value at key: a map value for
// maps, an element for slices and arrays (key must be an int), a byte
// for strings. The second result reports whether the index resolved.
func (it Item[V]) Index(key any) (any, bool) {
	rv := indirect(reflect.ValueOf(it.value))
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() || !kv.Type().AssignableTo(rv.Type().Key()) {
			return nil, false
		}
		ev := rv.MapIndex(kv)
		if !ev.IsValid() {
			return nil, false
		}
		return ev.Interface(), true
	case reflect.Slice, reflect.Array, reflect.String:
		i, ok := key.(int)
		if !ok || i < 0 || i >= rv.Len() {
			return nil, false
		}
		if rv.Kind() == reflect.String {
			return rv.String()[i], true
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

// Each iterates the inner value, calling fn for each element until it
// returns false: values for slices and arrays, keys for maps, runes for
// strings. Non-iterable values invoke fn zero times.
func (it Item[V]) Each(fn func(any) bool) {
	rv := indirect(reflect.ValueOf(it.value))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !fn(rv.Index(i).Interface()) {
				return
			}
		}
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			if !fn(k.Interface()) {
				return
			}
		}
	case reflect.String:
		for _, r := range rv.String() {
			if !fn(r) {
				return
			}
		}
	}
}

// Call invokes the inner value as a function with the given arguments
// and returns its results. Returns ErrNotCallable for non-function
// values and an error when the arguments don't fit the signature.
func (it Item[V]) Call(args ...any) ([]any, error) {
	rv := reflect.ValueOf(it.value)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, ErrNotCallable
	}

	ft := rv.Type()
	if ft.IsVariadic() {
		if len(args) < ft.NumIn()-1 {
			return nil, fmt.Errorf("call: expected at least %d args, got %d", ft.NumIn()-1, len(args))
		}
	} else if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("call: expected %d args, got %d", ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		av := reflect.ValueOf(a)
		if !av.IsValid() {
			// Untyped nil argument: use the parameter's zero value.
			in[i] = reflect.Zero(argType(ft, i))
			continue
		}
		if !av.Type().AssignableTo(argType(ft, i)) {
			return nil, fmt.Errorf("call: arg %d has type %s, want %s", i, av.Type(), argType(ft, i))
		}
		in[i] = av
	}

	out := rv.Call(in)
	results := make([]any, len(out))
	for i, o := range out {
		results[i] = o.Interface()
	}
	return results, nil
}

// Bool returns the truthiness of the inner value: false for nil values,
// zero values, and empty containers; true otherwise.
func (it Item[V]) Bool() bool {
	rv := reflect.ValueOf(it.value)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}

// String implements fmt.Stringer, formatting the inner value.
func (it Item[V]) String() string {
	return fmt.Sprintf("%v", it.value)
}

// argType returns the effective parameter type at position i, unwrapping
// the variadic slice element type.
func argType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

// indirect unwraps pointers and interfaces to the underlying value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
